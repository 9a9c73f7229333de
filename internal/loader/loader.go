// Package loader hydrates views from a primary source raced against a timeout,
// falling back to a cached snapshot and finally to a built-in dataset.
package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds how long a load waits for the primary source.
const DefaultTimeout = time.Second

// Source identifies where the items of a result came from.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// State is the loader's connection status as shown on the dashboard.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLive    State = "live"
	StateDemo    State = "demo"
)

// Reason explains why a load fell back.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonTimeout       Reason = "timeout"
	ReasonPrimaryFailed Reason = "primary_failed"
	ReasonNoPrimary     Reason = "no_primary"
)

// ErrTimeout is reported as the fallback cause when the primary is too slow.
var ErrTimeout = errors.New("primary fetch timed out")

// FetchFunc loads items from the primary source. It must honour ctx.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Result is the outcome of one load.
type Result[T any] struct {
	Items  []T
	Source Source
	Reason Reason
	// Cause is the swallowed primary error, if any.
	Cause error
	// FromDefaults is set when the snapshot was empty and the built-in
	// dataset was used instead.
	FromDefaults bool
	LoadedAt     time.Time
	Generation   uint64
	// Superseded is set when a newer load started before this one finished.
	// Such results are returned to their caller but never committed.
	Superseded bool
}

// Options configures a Loader.
type Options[T any] struct {
	Primary  FetchFunc[T]
	Fallback Snapshot[T]
	Defaults []T
	Timeout  time.Duration
	Logger   *zap.Logger
	// Now is overridable in tests.
	Now func() time.Time
}

// Loader is safe for concurrent use. Overlapping loads are ordered by the time
// they started: only the most recently started load commits its result.
type Loader[T any] struct {
	primary  FetchFunc[T]
	fallback Snapshot[T]
	defaults []T
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	generation atomic.Uint64
	persistMu  sync.Mutex

	mu      sync.RWMutex
	state   State
	current *Result[T]
}

// New builds a Loader.
func New[T any](opts Options[T]) *Loader[T] {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Loader[T]{
		primary:  opts.Primary,
		fallback: opts.Fallback,
		defaults: opts.Defaults,
		timeout:  timeout,
		logger:   logger,
		now:      now,
		state:    StateIdle,
	}
}

type outcome[T any] struct {
	items []T
	err   error
}

// Load runs one load cycle. Primary and snapshot failures are absorbed; the
// only error returned is the caller's own context error.
func (l *Loader[T]) Load(ctx context.Context) (Result[T], error) {
	gen := l.generation.Add(1)
	l.setState(gen, StateLoading)

	if err := ctx.Err(); err != nil {
		l.abandon(gen)
		return Result[T]{}, err
	}

	res := Result[T]{Generation: gen}
	items, reason, err := l.fetchPrimary(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		l.abandon(gen)
		return Result[T]{}, ctxErr
	}

	if err == nil {
		res.Items = items
		res.Source = SourceLive
	} else {
		res.Source = SourceDemo
		res.Reason = reason
		res.Cause = err
		l.logger.Warn("primary load failed; using fallback data",
			zap.String("reason", string(reason)),
			zap.Error(err))
		res.Items, res.FromDefaults = l.fallbackItems(ctx)
	}
	res.LoadedAt = l.now()

	if !l.commit(&res) {
		res.Superseded = true
		l.logger.Debug("discarding superseded load", zap.Uint64("generation", gen))
		return res, nil
	}
	if res.Source == SourceLive {
		l.persist(ctx, gen, res.Items)
	}
	return res, nil
}

// fetchPrimary races the primary fetch against the timeout. The derived
// context is cancelled on return, so an abandoned fetch is also cancelled.
func (l *Loader[T]) fetchPrimary(ctx context.Context) ([]T, Reason, error) {
	if l.primary == nil {
		return nil, ReasonNoPrimary, errors.New("no primary source configured")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		items, err := l.primary(fetchCtx)
		done <- outcome[T]{items: items, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) && fetchCtx.Err() != nil {
				return nil, ReasonTimeout, ErrTimeout
			}
			return nil, ReasonPrimaryFailed, out.err
		}
		if out.items == nil {
			out.items = []T{}
		}
		return out.items, ReasonNone, nil
	case <-fetchCtx.Done():
		return nil, ReasonTimeout, ErrTimeout
	}
}

// persist saves a committed live result. Saves are serialized and skipped once
// a newer load has started, so older items never overwrite newer ones.
func (l *Loader[T]) persist(ctx context.Context, gen uint64, items []T) {
	if l.fallback == nil {
		return
	}
	l.persistMu.Lock()
	defer l.persistMu.Unlock()
	if gen != l.generation.Load() {
		return
	}
	if err := l.fallback.Save(ctx, items); err != nil {
		l.logger.Warn("failed to refresh snapshot", zap.Error(err))
	}
}

func (l *Loader[T]) fallbackItems(ctx context.Context) ([]T, bool) {
	if l.fallback != nil {
		items, err := l.fallback.Load(ctx)
		if err != nil {
			l.logger.Warn("snapshot unavailable", zap.Error(err))
		} else if len(items) > 0 {
			return items, false
		}
	}
	out := make([]T, len(l.defaults))
	copy(out, l.defaults)
	return out, true
}

func (l *Loader[T]) setState(gen uint64, state State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen == l.generation.Load() {
		l.state = state
	}
}

// abandon restores the state implied by the last committed result after a
// cancelled load.
func (l *Loader[T]) abandon(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation.Load() {
		return
	}
	switch {
	case l.current == nil:
		l.state = StateIdle
	case l.current.Source == SourceLive:
		l.state = StateLive
	default:
		l.state = StateDemo
	}
}

// commit stores res as the current result if no newer load has started.
func (l *Loader[T]) commit(res *Result[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if res.Generation != l.generation.Load() {
		return false
	}
	l.current = res
	if res.Source == SourceLive {
		l.state = StateLive
	} else {
		l.state = StateDemo
	}
	return true
}

// State returns the current connection status.
func (l *Loader[T]) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Current returns the last committed result, if any.
func (l *Loader[T]) Current() (Result[T], bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return Result[T]{}, false
	}
	return *l.current, true
}

// Timeout returns the configured primary timeout.
func (l *Loader[T]) Timeout() time.Duration {
	return l.timeout
}
