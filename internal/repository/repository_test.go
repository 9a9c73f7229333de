package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/pkg/util/errorutil"
)

func TestRepositories_WithoutPoolReportUnavailable(t *testing.T) {
	ctx := context.Background()

	employees := NewEmployeeRepository(nil)
	_, err := employees.All(ctx)
	require.ErrorIs(t, err, errorutil.ErrDatabaseUnavailable)
	require.ErrorIs(t, employees.Create(ctx, &domain.Employee{}), errorutil.ErrDatabaseUnavailable)

	departments := NewDepartmentRepository(nil)
	_, err = departments.List(ctx, true)
	require.ErrorIs(t, err, errorutil.ErrDatabaseUnavailable)

	attendance := NewAttendanceRepository(nil)
	_, err = attendance.CountByStatus(ctx, time.Now())
	require.ErrorIs(t, err, errorutil.ErrDatabaseUnavailable)

	reviews := NewPerformanceRepository(nil)
	require.ErrorIs(t, reviews.Delete(ctx, "x"), errorutil.ErrDatabaseUnavailable)
}

func TestMapWriteError(t *testing.T) {
	require.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: "23505"}), ErrDuplicate)

	other := errors.New("boom")
	require.Equal(t, other, mapWriteError(other))
	require.NoError(t, mapWriteError(nil))
}

func TestPageBounds(t *testing.T) {
	limit, offset := pageBounds(0, -3)
	require.Equal(t, defaultPageSize, limit)
	require.Equal(t, 0, offset)

	limit, offset = pageBounds(10, 20)
	require.Equal(t, 10, limit)
	require.Equal(t, 20, offset)
}

func TestNullableDate(t *testing.T) {
	require.Nil(t, nullableDate(time.Time{}))
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, d, *nullableDate(d))
}
