package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/pkg/util/errorutil"
)

func TestEmployeeRequest_ValidateReportsFields(t *testing.T) {
	req := EmployeeRequest{Email: "not-an-email", Salary: -1, Status: "Retired", JoinDate: "03/01/2024"}

	err := req.Validate()
	require.Error(t, err)

	de := errorutil.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	require.Equal(t, 400, de.HTTPStatus)
	require.Equal(t, "is required", de.Details["name"])
	require.Equal(t, "must be a valid email address", de.Details["email"])
	require.Equal(t, "must be at least 0", de.Details["salary"])
	require.Contains(t, de.Details["status"], "Active Inactive")
	require.Contains(t, de.Details, "joinDate")
}

func TestEmployeeRequest_ApplyNormalizes(t *testing.T) {
	req := EmployeeRequest{
		Name:     "  Asha Rao ",
		Email:    " Asha@Example.COM ",
		Salary:   52000,
		JoinDate: "2024-03-01",
	}
	require.NoError(t, req.Validate())

	var e domain.Employee
	req.Apply(&e)
	require.Equal(t, "Asha Rao", e.Name)
	require.Equal(t, "asha@example.com", e.Email)
	require.Equal(t, 52000.0, e.Salary)
	require.Equal(t, domain.EmployeeStatusActive, e.Status)
	require.Equal(t, 2024, e.JoinDate.Year())
}

func TestPerformanceReviewRequest_RatingBounds(t *testing.T) {
	req := PerformanceReviewRequest{
		EmployeeID: "7f9c2d5e-4c1a-4b59-9a61-6a3f0f3c2b10",
		Period:     "2024-Q1",
		Rating:     6,
	}
	err := req.Validate()
	de := errorutil.ToDomainError(err)
	require.Equal(t, "must be at most 5", de.Details["rating"])

	req.Rating = 5
	require.NoError(t, req.Validate())
}

func TestAttendanceRequest_Validate(t *testing.T) {
	checkIn := "2024-03-01T09:05:00Z"
	req := AttendanceRequest{
		EmployeeID: "7f9c2d5e-4c1a-4b59-9a61-6a3f0f3c2b10",
		Date:       "2024-03-01",
		CheckIn:    &checkIn,
		Status:     "Late",
	}
	require.NoError(t, req.Validate())
	require.Equal(t, 1, req.ParsedDate().Day())
	require.Equal(t, 9, ParseTimestamp(req.CheckIn).Hour())

	req.Status = "Sick"
	de := errorutil.ToDomainError(req.Validate())
	require.Contains(t, de.Details, "status")
}
