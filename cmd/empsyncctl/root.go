package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/bootstrap"
	"github.com/empsync/empsync-service/internal/config"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/events"
	"github.com/empsync/empsync-service/internal/loader"
	"github.com/empsync/empsync-service/internal/observability"
	"github.com/empsync/empsync-service/internal/persistence"
	"github.com/empsync/empsync-service/internal/repository"
	"github.com/empsync/empsync-service/internal/service"
)

type globalFlags struct {
	source   string
	snapshot string
	timeout  int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:          "empsyncctl",
		Short:        "Inspect and export employee data from the command line",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.source, "source", "", "Primary source: postgres or remote (default from DASHBOARD_PRIMARY_SOURCE)")
	cmd.PersistentFlags().StringVar(&flags.snapshot, "snapshot", config.SnapshotStoreSQLite, "Snapshot store: sqlite, redis or memory")
	cmd.PersistentFlags().IntVar(&flags.timeout, "timeout-ms", 0, "Primary fetch timeout in milliseconds (default from DASHBOARD_LOAD_TIMEOUT_MS)")

	cmd.AddCommand(newAnalyticsCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newImportCmd(flags))
	return cmd
}

// runtime holds the resources opened for a single command.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	pg        *persistence.Postgres
	redis     *persistence.Redis
	employees *service.EmployeeService
	loader    *loader.Loader[domain.Employee]
	closers   []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func openRuntime(ctx context.Context, flags *globalFlags) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.source != "" {
		cfg.Dashboard.PrimarySource = flags.source
	}
	if flags.snapshot != "" {
		cfg.Dashboard.SnapshotStore = flags.snapshot
	}
	if flags.timeout > 0 {
		cfg.Dashboard.LoadTimeoutMillis = flags.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Command output goes to stdout; keep logs quiet unless asked for.
	if cfg.Logger.Level == "info" {
		cfg.Logger.Level = "warn"
	}
	logger, err := observability.NewLogger(cfg.Logger, "empsyncctl")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logger}
	rt.closers = append(rt.closers, func() { _ = logger.Sync() })

	rt.pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	rt.closers = append(rt.closers, rt.pg.Close)

	if cfg.Dashboard.SnapshotStore == config.SnapshotStoreRedis {
		rt.redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		rt.closers = append(rt.closers, rt.redis.Close)
	}

	store, closeStore, err := bootstrap.SnapshotStore(ctx, *cfg, rt.redis)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, closeStore)

	rt.employees = service.NewEmployeeService(repository.NewEmployeeRepository(rt.pg.PoolHandle()), events.NewInMemoryDispatcher(), logger)
	primary := bootstrap.PrimarySource(cfg.Dashboard, rt.employees, logger)
	rt.loader = bootstrap.NewLoader(cfg.Dashboard, primary, bootstrap.NewSnapshot(store, cfg.Dashboard), logger)
	return rt, nil
}
