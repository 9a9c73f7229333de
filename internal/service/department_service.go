package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/empsync/empsync-service/internal/analytics"
	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/repository"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// EmployeeSource yields the employee collection that statistics are computed over.
type EmployeeSource interface {
	Employees(ctx context.Context) ([]domain.Employee, error)
}

// DepartmentService manages the department catalogue and its statistics.
type DepartmentService struct {
	departments repository.DepartmentRepository
	employees   EmployeeSource
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, employees EmployeeSource) *DepartmentService {
	return &DepartmentService{departments: departments, employees: employees}
}

// List returns departments, optionally only the active ones.
func (s *DepartmentService) List(ctx context.Context, activeOnly bool) ([]domain.Department, error) {
	departments, err := s.departments.List(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return departments, nil
}

// Create adds a department.
func (s *DepartmentService) Create(ctx context.Context, req dto.DepartmentRequest) (*domain.Department, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dept := &domain.Department{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, departmentWriteError(err, req.Name)
	}
	return dept, nil
}

// Update modifies department metadata.
func (s *DepartmentService) Update(ctx context.Context, id string, req dto.DepartmentRequest) (*domain.Department, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs("department", id, err)
	}
	dept.Name = req.Name
	dept.Description = req.Description
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, departmentWriteError(err, req.Name)
	}
	return dept, nil
}

// Stats groups the current employee collection by department.
func (s *DepartmentService) Stats(ctx context.Context) ([]domain.DepartmentStat, error) {
	employees, err := s.employees.Employees(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return analytics.DepartmentStats(employees), nil
}

func departmentWriteError(err error, name string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict("department already exists", map[string]any{"name": name})
	}
	return apperrors.MapError(err)
}
