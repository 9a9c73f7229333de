package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/empsync/empsync-service/internal/api/http"
	"github.com/empsync/empsync-service/internal/api/http/handlers"
	"github.com/empsync/empsync-service/internal/bootstrap"
	"github.com/empsync/empsync-service/internal/config"
	"github.com/empsync/empsync-service/internal/events"
	"github.com/empsync/empsync-service/internal/observability"
	"github.com/empsync/empsync-service/internal/persistence"
	"github.com/empsync/empsync-service/internal/repository"
	"github.com/empsync/empsync-service/internal/service"
	"github.com/empsync/empsync-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	if cfg.Dashboard.SnapshotStore == config.SnapshotStoreRedis {
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
	}

	store, closeStore, err := bootstrap.SnapshotStore(ctx, *cfg, redis)
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer closeStore()
	snapshot := bootstrap.NewSnapshot(store, cfg.Dashboard)

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	performanceRepo := repository.NewPerformanceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	employeeService := service.NewEmployeeService(employeeRepo, dispatcher, logger)
	dashboardLoader := bootstrap.NewLoader(cfg.Dashboard, bootstrap.PrimarySource(cfg.Dashboard, employeeService, logger), snapshot, logger)
	dashboardService := service.NewDashboardService(dashboardLoader, metrics, logger)
	departmentService := service.NewDepartmentService(departmentRepo, dashboardService)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo)
	performanceService := service.NewPerformanceService(performanceRepo, employeeRepo)
	exportService := service.NewExportService(employeeService, dispatcher, cfg.Export.SheetName, logger)

	worker.StartSnapshotWorker(service.NewSnapshotService(dispatcher, employeeService, snapshot, metrics, logger))
	dashboardService.RegisterHandlers(dispatcher)
	go worker.RunDashboardRefresher(ctx, dashboardService, cfg.Dashboard.RefreshInterval(), logger)

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSAllowOrigins)

	checks := []handlers.DependencyCheck{
		{Name: "postgres", Ping: pg.Ping, Optional: true},
	}
	if redis != nil {
		checks = append(checks, handlers.DependencyCheck{Name: "redis", Ping: redis.Ping, Optional: true})
	}
	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, func() string {
		return string(dashboardService.State())
	}, checks...)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      healthHandler,
		Employees:   handlers.NewEmployeesHandler(employeeService, dashboardService, exportService),
		Departments: handlers.NewDepartmentsHandler(departmentService),
		Attendance:  handlers.NewAttendanceHandler(attendanceService),
		Performance: handlers.NewPerformanceHandler(performanceService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Metrics:     metrics.Handler(),
	})

	// Warm the dashboard so the first request is served from memory.
	if _, err := dashboardService.Load(ctx); err != nil {
		logger.Warn("initial dashboard load failed", zap.Error(err))
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("http server started", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
