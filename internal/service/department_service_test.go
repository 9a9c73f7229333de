package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

func TestDepartmentService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewDepartmentService(newFakeDepartmentRepo(), staticSource(nil))

	dept, err := svc.Create(ctx, dto.DepartmentRequest{Name: " Engineering "})
	require.NoError(t, err)
	require.Equal(t, "Engineering", dept.Name)
	require.True(t, dept.IsActive)

	_, err = svc.Create(ctx, dto.DepartmentRequest{Name: "engineering"})
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	inactive := false
	updated, err := svc.Update(ctx, dept.ID, dto.DepartmentRequest{Name: "Platform", IsActive: &inactive})
	require.NoError(t, err)
	require.Equal(t, "Platform", updated.Name)
	require.False(t, updated.IsActive)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestDepartmentService_Stats(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo(), staticSource([]domain.Employee{
		{ID: "1", Department: "Sales", Salary: 40000, Status: domain.EmployeeStatusActive},
		{ID: "2", Department: "Sales", Salary: 60000, Status: domain.EmployeeStatusInactive},
		{ID: "3", Department: "HR", Salary: 45000, Status: domain.EmployeeStatusActive},
	}))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, "Sales", stats[0].Name)
	require.Equal(t, 50000.0, stats[0].AvgSalary)
	require.Equal(t, 50, stats[0].Utilization)
}
