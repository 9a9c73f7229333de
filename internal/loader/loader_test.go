package loader_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/kvstore"
	"github.com/empsync/empsync-service/internal/loader"
)

const snapshotKey = "employees"

var defaults = []domain.Employee{
	{ID: "d1", Name: "Demo One", Salary: 1000, Status: domain.EmployeeStatusActive},
	{ID: "d2", Name: "Demo Two", Salary: 2000, Status: domain.EmployeeStatusActive},
}

func newSnapshot() (*kvstore.Memory, *loader.KVSnapshot[domain.Employee]) {
	store := kvstore.NewMemory()
	return store, loader.NewKVSnapshot[domain.Employee](store, snapshotKey, codec.EmployeeCodec{})
}

func delayed(d time.Duration, items []domain.Employee, err error) loader.FetchFunc[domain.Employee] {
	return func(ctx context.Context) ([]domain.Employee, error) {
		select {
		case <-time.After(d):
			return items, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func TestLoad_FastPrimaryIsLive(t *testing.T) {
	live := []domain.Employee{{ID: "1", Name: "Asha", Salary: 50000}}
	store, snap := newSnapshot()
	l := loader.New(loader.Options[domain.Employee]{
		Primary:  delayed(20*time.Millisecond, live, nil),
		Fallback: snap,
		Defaults: defaults,
		Timeout:  200 * time.Millisecond,
	})

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, loader.SourceLive, res.Source)
	require.Equal(t, loader.ReasonNone, res.Reason)
	require.Len(t, res.Items, 1)
	require.Equal(t, "Asha", res.Items[0].Name)
	require.Equal(t, loader.StateLive, l.State())

	// a live load refreshes the snapshot
	raw, ok, err := store.Get(context.Background(), snapshotKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, raw, "Asha")
}

func TestLoad_SlowPrimaryFallsBackToSnapshot(t *testing.T) {
	_, snap := newSnapshot()
	cached := []domain.Employee{{ID: "c1", Name: "Cached", Salary: 42000, Status: domain.EmployeeStatusActive}}
	require.NoError(t, snap.Save(context.Background(), cached))

	l := loader.New(loader.Options[domain.Employee]{
		Primary:  delayed(2*time.Second, []domain.Employee{{ID: "late"}}, nil),
		Fallback: snap,
		Defaults: defaults,
		Timeout:  50 * time.Millisecond,
	})

	start := time.Now()
	res, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, loader.SourceDemo, res.Source)
	require.Equal(t, loader.ReasonTimeout, res.Reason)
	require.ErrorIs(t, res.Cause, loader.ErrTimeout)
	require.False(t, res.FromDefaults)
	require.Len(t, res.Items, 1)
	require.Equal(t, "Cached", res.Items[0].Name)
	require.Equal(t, loader.StateDemo, l.State())
}

func TestLoad_FailedPrimaryWithEmptySnapshotUsesDefaults(t *testing.T) {
	_, snap := newSnapshot()
	l := loader.New(loader.Options[domain.Employee]{
		Primary:  delayed(0, nil, errors.New("connection refused")),
		Fallback: snap,
		Defaults: defaults,
		Timeout:  100 * time.Millisecond,
	})

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, loader.SourceDemo, res.Source)
	require.Equal(t, loader.ReasonPrimaryFailed, res.Reason)
	require.EqualError(t, res.Cause, "connection refused")
	require.True(t, res.FromDefaults)
	require.Equal(t, defaults, res.Items)

	res.Items[0].Name = "mutated"
	require.Equal(t, "Demo One", defaults[0].Name)
}

func TestLoad_CorruptSnapshotUsesDefaults(t *testing.T) {
	store, snap := newSnapshot()
	require.NoError(t, store.Set(context.Background(), snapshotKey, "{not json"))

	_, err := snap.Load(context.Background())
	require.ErrorIs(t, err, loader.ErrCorruptSnapshot)

	l := loader.New(loader.Options[domain.Employee]{
		Fallback: snap,
		Defaults: defaults,
	})
	res, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, loader.ReasonNoPrimary, res.Reason)
	require.True(t, res.FromDefaults)
	require.Len(t, res.Items, len(defaults))
}

func TestLoad_EmptyLiveResultIsStillLive(t *testing.T) {
	l := loader.New(loader.Options[domain.Employee]{
		Primary:  delayed(0, nil, nil),
		Defaults: defaults,
	})

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, loader.SourceLive, res.Source)
	require.NotNil(t, res.Items)
	require.Empty(t, res.Items)
}

func TestLoad_SupersededLoadIsNotCommitted(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	primary := func(ctx context.Context) ([]domain.Employee, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return delayed(150*time.Millisecond, []domain.Employee{{ID: "first"}}, nil)(ctx)
		}
		return delayed(10*time.Millisecond, []domain.Employee{{ID: "second"}}, nil)(ctx)
	}
	_, snap := newSnapshot()
	l := loader.New(loader.Options[domain.Employee]{
		Primary:  primary,
		Fallback: snap,
		Timeout:  time.Second,
	})

	firstDone := make(chan loader.Result[domain.Employee], 1)
	go func() {
		res, _ := l.Load(context.Background())
		firstDone <- res
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 5*time.Millisecond)

	second, err := l.Load(context.Background())
	require.NoError(t, err)
	require.False(t, second.Superseded)

	first := <-firstDone
	require.True(t, first.Superseded)
	require.Less(t, first.Generation, second.Generation)

	current, ok := l.Current()
	require.True(t, ok)
	require.Equal(t, "second", current.Items[0].ID)
	require.Equal(t, loader.StateLive, l.State())

	// the late result must not replace the snapshot written by the newer load
	cached, err := snap.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "second", cached[0].ID)
}

func TestLoad_CancelledContext(t *testing.T) {
	l := loader.New(loader.Options[domain.Employee]{
		Primary:  delayed(0, []domain.Employee{{ID: "1"}}, nil),
		Defaults: defaults,
	})

	_, err := l.Load(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, loader.StateLive, l.State())

	current, ok := l.Current()
	require.True(t, ok)
	require.Equal(t, "1", current.Items[0].ID)
}

func TestLoad_CancelledMidFetch(t *testing.T) {
	l := loader.New(loader.Options[domain.Employee]{
		Primary: delayed(time.Second, []domain.Employee{{ID: "1"}}, nil),
		Timeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := l.Load(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, loader.StateIdle, l.State())

	_, ok := l.Current()
	require.False(t, ok)
}

func TestNew_Defaults(t *testing.T) {
	l := loader.New(loader.Options[domain.Employee]{})
	require.Equal(t, loader.DefaultTimeout, l.Timeout())
	require.Equal(t, loader.StateIdle, l.State())
}
