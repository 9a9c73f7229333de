package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/events"
	"github.com/empsync/empsync-service/internal/repository"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// EmployeeService coordinates employee CRUD and publishes change events.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// EmployeeListFilters define listing parameters.
type EmployeeListFilters struct {
	Department *string
	Status     *domain.EmployeeStatus
	Gender     *string
	Search     string
	Limit      int
	Offset     int
}

// NewEmployeeService constructs the service.
func NewEmployeeService(employees repository.EmployeeRepository, dispatcher events.Dispatcher, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employees: employees, dispatcher: dispatcher, logger: logger}
}

// List returns a page of employees.
func (s *EmployeeService) List(ctx context.Context, filters EmployeeListFilters) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{
		Department: filters.Department,
		Status:     filters.Status,
		Gender:     filters.Gender,
		Search:     filters.Search,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// All returns every employee. It is the dashboard's primary source.
func (s *EmployeeService) All(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.All(ctx)
}

// Get fetches one employee.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
	}
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs("employee", id, err)
	}
	return employee, nil
}

// Create validates and stores a new employee.
func (s *EmployeeService) Create(ctx context.Context, req dto.EmployeeRequest) (*domain.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	employee := &domain.Employee{}
	req.Apply(employee)
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, s.writeError(err, req.Email)
	}

	s.logger.Info("employee created", zap.String("employee_id", employee.ID))
	s.publishEvent(ctx, events.EventEmployeeCreated, employee)
	return employee, nil
}

// Update replaces the mutable fields of an employee.
func (s *EmployeeService) Update(ctx context.Context, id string, req dto.EmployeeRequest) (*domain.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != employee.Email {
		if err := s.ensureEmailFree(ctx, req.Email, employee.ID); err != nil {
			return nil, err
		}
	}

	req.Apply(employee)
	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, s.writeError(err, req.Email)
	}

	s.publishEvent(ctx, events.EventEmployeeUpdated, employee)
	return employee, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("employee", map[string]any{"id": id})
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		return notFoundAs("employee", id, err)
	}
	s.logger.Info("employee deleted", zap.String("employee_id", id))
	s.publishEvent(ctx, events.EventEmployeeDeleted, &domain.Employee{ID: id})
	return nil
}

func (s *EmployeeService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.employees.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil && existing.ID != selfID:
		return apperrors.NewConflict("employee email already exists", map[string]any{"email": email})
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return apperrors.MapError(err)
	}
	return nil
}

func (s *EmployeeService) writeError(err error, email string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict("employee email already exists", map[string]any{"email": email})
	}
	return apperrors.MapError(err)
}

func (s *EmployeeService) publishEvent(ctx context.Context, eventType events.EventType, employee *domain.Employee) {
	var payload any
	if eventType != events.EventEmployeeDeleted {
		payload = events.EmployeeChangedPayload{
			Name:       employee.Name,
			Department: employee.Department,
			Status:     string(employee.Status),
		}
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       eventType,
		EmployeeID: employee.ID,
		Payload:    payload,
	})
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Batch = event.Batch || events.InBatch(ctx)
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// notFoundAs maps pgx.ErrNoRows to a NOT_FOUND naming the resource.
func notFoundAs(resource, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
