package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/events"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

func validRequest(email string) dto.EmployeeRequest {
	return dto.EmployeeRequest{
		Name:       "Asha Rao",
		Email:      email,
		Department: "Engineering",
		Salary:     52000,
		JoinDate:   "2024-02-01",
	}
}

func TestEmployeeService_CreatePublishesEvent(t *testing.T) {
	repo := newFakeEmployeeRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventEmployeeCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewEmployeeService(repo, dispatcher, nil)
	employee, err := svc.Create(context.Background(), validRequest("asha@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, employee.ID)

	require.Len(t, published, 1)
	require.Equal(t, employee.ID, published[0].EmployeeID)
	require.NotEmpty(t, published[0].ID)
	require.False(t, published[0].Timestamp.IsZero())
}

func TestEmployeeService_CreateRejectsDuplicateEmail(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), nil, nil)
	_, err := svc.Create(context.Background(), validRequest("asha@example.com"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validRequest("ASHA@example.com"))
	de := apperrors.ToDomainError(err)
	require.Equal(t, "CONFLICT", de.Code)
	require.Equal(t, 409, de.HTTPStatus)
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), nil, nil)
	_, err := svc.Create(context.Background(), dto.EmployeeRequest{Email: "nope"})
	de := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	require.Contains(t, de.Details, "name")
	require.Contains(t, de.Details, "email")
}

func TestEmployeeService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(newFakeEmployeeRepo(), events.NewInMemoryDispatcher(), nil)

	first, err := svc.Create(ctx, validRequest("asha@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest("ravi@example.com"))
	require.NoError(t, err)

	req := validRequest("asha@example.com")
	req.Position = "Lead"
	updated, err := svc.Update(ctx, first.ID, req)
	require.NoError(t, err)
	require.Equal(t, "Lead", updated.Position)

	// taking another employee's email is a conflict
	_, err = svc.Update(ctx, first.ID, validRequest("ravi@example.com"))
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = svc.Delete(ctx, first.ID)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestEmployeeService_GetRejectsMalformedID(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), nil, nil)
	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestEmployeeService_DatabaseUnavailable(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.err = apperrors.ErrDatabaseUnavailable
	svc := NewEmployeeService(repo, nil, nil)

	_, err := svc.List(context.Background(), EmployeeListFilters{})
	require.Equal(t, 503, apperrors.ToDomainError(err).HTTPStatus)
}
