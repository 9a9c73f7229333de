package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/analytics"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/events"
	"github.com/empsync/empsync-service/internal/loader"
	"github.com/empsync/empsync-service/internal/observability"
)

// recentHireCount is how many recent hires the dashboard lists.
const recentHireCount = 5

// DashboardView is everything the dashboard renders after a load.
type DashboardView struct {
	Source       loader.Source
	State        loader.State
	Reason       loader.Reason
	FromDefaults bool
	LoadedAt     time.Time
	Analytics    domain.Analytics
	RecentHires  []domain.Employee
}

// DashboardService hydrates the dashboard through the resilient loader.
type DashboardService struct {
	loader  *loader.Loader[domain.Employee]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(l *loader.Loader[domain.Employee], metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{loader: l, metrics: metrics, logger: logger}
}

// Load returns the view of the last committed load, loading first if nothing
// has been loaded yet.
func (s *DashboardService) Load(ctx context.Context) (DashboardView, error) {
	res, err := s.current(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	return s.view(res), nil
}

// Refresh forces a new load cycle.
func (s *DashboardService) Refresh(ctx context.Context) (DashboardView, error) {
	res, err := s.load(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	return s.view(res), nil
}

// Employees returns the employees of the current view.
func (s *DashboardService) Employees(ctx context.Context) ([]domain.Employee, error) {
	res, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Employee, len(res.Items))
	copy(out, res.Items)
	return out, nil
}

// Analytics aggregates the subset of current employees matching filter.
func (s *DashboardService) Analytics(ctx context.Context, filter analytics.EmployeeFilter) (domain.Analytics, error) {
	employees, err := s.Employees(ctx)
	if err != nil {
		return domain.Analytics{}, err
	}
	return analytics.Aggregate(analytics.Filter(employees, filter)), nil
}

// RegisterHandlers reloads the dashboard after every employee change so views
// never outlive the data they were computed from.
func (s *DashboardService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventEmployeeCreated,
		events.EventEmployeeUpdated,
		events.EventEmployeeDeleted,
		events.EventEmployeesImported,
	} {
		dispatcher.Subscribe(eventType, s.handleEmployeeChanged)
	}
}

func (s *DashboardService) handleEmployeeChanged(ctx context.Context, event events.Event) error {
	if event.Batch {
		return nil
	}
	_, err := s.load(ctx)
	return err
}

// State reports the loader's connection status.
func (s *DashboardService) State() loader.State {
	return s.loader.State()
}

func (s *DashboardService) current(ctx context.Context) (loader.Result[domain.Employee], error) {
	if res, ok := s.loader.Current(); ok {
		return res, nil
	}
	return s.load(ctx)
}

func (s *DashboardService) load(ctx context.Context) (loader.Result[domain.Employee], error) {
	res, err := s.loader.Load(ctx)
	if err != nil {
		return res, err
	}
	s.metrics.RecordDashboardLoad(string(res.Source), string(res.Reason))
	s.logger.Info("dashboard loaded",
		zap.String("source", string(res.Source)),
		zap.String("reason", string(res.Reason)),
		zap.Int("employees", len(res.Items)),
		zap.Bool("superseded", res.Superseded))
	return res, nil
}

func (s *DashboardService) view(res loader.Result[domain.Employee]) DashboardView {
	return DashboardView{
		Source:       res.Source,
		State:        s.loader.State(),
		Reason:       res.Reason,
		FromDefaults: res.FromDefaults,
		LoadedAt:     res.LoadedAt,
		Analytics:    analytics.Aggregate(res.Items),
		RecentHires:  analytics.RecentHires(res.Items, recentHireCount),
	}
}
