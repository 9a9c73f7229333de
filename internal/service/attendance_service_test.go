package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

const employeeID = "7f9c2d5e-4c1a-4b59-9a61-6a3f0f3c2b10"

func attendanceFixture() (*AttendanceService, *fakeAttendanceRepo) {
	employees := newFakeEmployeeRepo(domain.Employee{ID: employeeID, Name: "Asha Rao"})
	records := newFakeAttendanceRepo()
	return NewAttendanceService(records, employees), records
}

func TestAttendanceService_MarkAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := attendanceFixture()

	rec, err := svc.Mark(ctx, dto.AttendanceRequest{EmployeeID: employeeID, Date: "2024-03-01", Status: "Late"})
	require.NoError(t, err)
	require.Equal(t, "Asha Rao", rec.EmployeeName)

	_, err = svc.Mark(ctx, dto.AttendanceRequest{EmployeeID: employeeID, Date: "2024-03-01", Status: "Present"})
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	summary, err := svc.Summary(ctx, &day)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01", summary.Date)
	require.Equal(t, 1, summary.Total)
	require.Equal(t, 1, summary.Counts[domain.AttendanceLate])
	require.Equal(t, 0, summary.Counts[domain.AttendanceAbsent])
	require.Len(t, summary.Counts, len(domain.AttendanceStatuses))
	require.Equal(t, 100, summary.PresentRate)
}

func TestAttendanceService_MarkUnknownEmployee(t *testing.T) {
	svc, _ := attendanceFixture()
	_, err := svc.Mark(context.Background(), dto.AttendanceRequest{
		EmployeeID: "0b8f5f55-0000-4000-8000-000000000000",
		Date:       "2024-03-01",
		Status:     "Present",
	})
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAttendanceService_UpdateRejectsCheckoutBeforeCheckin(t *testing.T) {
	ctx := context.Background()
	svc, _ := attendanceFixture()
	rec, err := svc.Mark(ctx, dto.AttendanceRequest{EmployeeID: employeeID, Date: "2024-03-01", Status: "Present"})
	require.NoError(t, err)

	in, out := "2024-03-01T09:00:00Z", "2024-03-01T08:00:00Z"
	_, err = svc.Update(ctx, rec.ID, dto.AttendanceUpdateRequest{CheckIn: &in, CheckOut: &out, Status: "Present"})
	de := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	require.Contains(t, de.Details, "checkOut")

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(svc.Delete(ctx, rec.ID)).Code)
}
