package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/service"
)

// StartSnapshotWorker registers snapshot refresh handlers.
func StartSnapshotWorker(snapshotService *service.SnapshotService) {
	if snapshotService == nil {
		return
	}
	snapshotService.RegisterHandlers()
}

// Refresher reloads a view on demand.
type Refresher interface {
	Refresh(ctx context.Context) (service.DashboardView, error)
}

// RunDashboardRefresher reloads the dashboard every interval until ctx is done.
// A non-positive interval returns immediately.
func RunDashboardRefresher(ctx context.Context, dashboard Refresher, interval time.Duration, logger *zap.Logger) {
	if dashboard == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := dashboard.Refresh(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("background dashboard refresh failed", zap.Error(err))
			}
		}
	}
}
