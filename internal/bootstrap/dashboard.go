// Package bootstrap assembles the dashboard loader from configuration. It is
// shared by the API server and the command-line client.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/backend"
	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/config"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/kvstore"
	"github.com/empsync/empsync-service/internal/loader"
	"github.com/empsync/empsync-service/internal/persistence"
	"github.com/empsync/empsync-service/internal/service"
)

// SnapshotStore opens the configured snapshot backend. redis may be nil unless
// the redis backend is selected. The returned close func is never nil.
func SnapshotStore(ctx context.Context, cfg config.Config, redis *persistence.Redis) (kvstore.Store, func(), error) {
	switch cfg.Dashboard.SnapshotStore {
	case config.SnapshotStoreRedis:
		if redis == nil || redis.Client == nil {
			return nil, nil, fmt.Errorf("snapshot store %q selected without a redis client", cfg.Dashboard.SnapshotStore)
		}
		return kvstore.NewRedis(redis.Client, cfg.Redis.KeyPrefix), func() {}, nil
	case config.SnapshotStoreSQLite:
		db, err := persistence.OpenSQLite(cfg.Dashboard.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := kvstore.NewSQLite(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	default:
		return kvstore.NewMemory(), func() {}, nil
	}
}

// PrimarySource picks the dashboard's primary fetch: the employee table or the
// remote backend API.
func PrimarySource(cfg config.DashboardConfig, employees service.EmployeeLister, logger *zap.Logger) loader.FetchFunc[domain.Employee] {
	if cfg.PrimarySource == config.PrimarySourceRemote {
		return backend.NewClient(cfg.BackendURL, logger).FetchEmployees
	}
	if employees == nil {
		return nil
	}
	return employees.All
}

// NewSnapshot binds the employee snapshot to store.
func NewSnapshot(store kvstore.Store, cfg config.DashboardConfig) *loader.KVSnapshot[domain.Employee] {
	return loader.NewKVSnapshot[domain.Employee](store, cfg.SnapshotKey, codec.EmployeeCodec{})
}

// NewLoader builds the employee loader with the built-in demo dataset as the
// last-resort fallback.
func NewLoader(cfg config.DashboardConfig, primary loader.FetchFunc[domain.Employee], snapshot loader.Snapshot[domain.Employee], logger *zap.Logger) *loader.Loader[domain.Employee] {
	return loader.New(loader.Options[domain.Employee]{
		Primary:  primary,
		Fallback: snapshot,
		Defaults: service.DemoEmployees(),
		Timeout:  cfg.LoadTimeout(),
		Logger:   logger,
	})
}
