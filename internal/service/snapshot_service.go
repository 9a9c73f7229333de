package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/events"
	"github.com/empsync/empsync-service/internal/loader"
	"github.com/empsync/empsync-service/internal/observability"
)

// EmployeeLister returns the full employee collection.
type EmployeeLister interface {
	All(ctx context.Context) ([]domain.Employee, error)
}

// SnapshotService keeps the fallback snapshot in step with employee mutations.
type SnapshotService struct {
	dispatcher events.Dispatcher
	employees  EmployeeLister
	snapshot   loader.Snapshot[domain.Employee]
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSnapshotService creates the service.
func NewSnapshotService(dispatcher events.Dispatcher, employees EmployeeLister, snapshot loader.Snapshot[domain.Employee], metrics *observability.Metrics, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		dispatcher: dispatcher,
		employees:  employees,
		snapshot:   snapshot,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to employee events.
func (s *SnapshotService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventEmployeeCreated, s.handleEmployeeChanged)
	s.dispatcher.Subscribe(events.EventEmployeeUpdated, s.handleEmployeeChanged)
	s.dispatcher.Subscribe(events.EventEmployeeDeleted, s.handleEmployeeChanged)
	s.dispatcher.Subscribe(events.EventEmployeesImported, s.handleEmployeeChanged)
}

func (s *SnapshotService) handleEmployeeChanged(ctx context.Context, event events.Event) error {
	if event.Batch {
		return nil
	}
	s.logger.Debug("refreshing snapshot",
		zap.String("event_type", string(event.Type)),
		zap.String("employee_id", event.EmployeeID))
	return s.Refresh(ctx)
}

// Refresh writes the full employee list to the snapshot.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	employees, err := s.employees.All(ctx)
	if err != nil {
		s.logger.Warn("snapshot refresh skipped; employees unavailable", zap.Error(err))
		return err
	}
	err = s.snapshot.Save(ctx, employees)
	s.metrics.RecordSnapshotWrite(err)
	if err != nil {
		s.logger.Warn("snapshot write failed", zap.Error(err))
		return err
	}
	s.logger.Debug("snapshot refreshed", zap.Int("employees", len(employees)))
	return nil
}
