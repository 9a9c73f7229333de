package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/service"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) Refresh(context.Context) (service.DashboardView, error) {
	c.calls.Add(1)
	return service.DashboardView{}, nil
}

func TestRunDashboardRefresher_TicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	refresher := &countingRefresher{}

	done := make(chan struct{})
	go func() {
		RunDashboardRefresher(ctx, refresher, 10*time.Millisecond, zap.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool { return refresher.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
}

func TestRunDashboardRefresher_DisabledInterval(t *testing.T) {
	refresher := &countingRefresher{}
	RunDashboardRefresher(context.Background(), refresher, 0, zap.NewNop())
	require.Zero(t, refresher.calls.Load())
}

func TestStartSnapshotWorker_NilService(t *testing.T) {
	require.NotPanics(t, func() { StartSnapshotWorker(nil) })
}
