package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/empsync/empsync-service/internal/kvstore"
)

// ErrCorruptSnapshot marks snapshot text that could not be decoded.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the fallback source consulted when the primary is unavailable.
type Snapshot[T any] interface {
	// Load returns the cached items; a missing snapshot is an empty slice, not an error.
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// Codec converts items to and from their stored text form.
type Codec[T any] interface {
	Encode(items []T) ([]byte, error)
	Decode(raw []byte) ([]T, error)
}

// KVSnapshot keeps a snapshot under a single key of a kvstore.Store.
type KVSnapshot[T any] struct {
	store kvstore.Store
	key   string
	codec Codec[T]
}

// NewKVSnapshot binds a snapshot to key in store.
func NewKVSnapshot[T any](store kvstore.Store, key string, codec Codec[T]) *KVSnapshot[T] {
	return &KVSnapshot[T]{store: store, key: key, codec: codec}
}

// Load reads and decodes the snapshot. Undecodable text is reported as
// ErrCorruptSnapshot so callers can treat it as "no cached data".
func (s *KVSnapshot[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", s.key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	items, err := s.codec.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrCorruptSnapshot, s.key, err)
	}
	return items, nil
}

// Save encodes and writes the snapshot.
func (s *KVSnapshot[T]) Save(ctx context.Context, items []T) error {
	raw, err := s.codec.Encode(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("write snapshot %q: %w", s.key, err)
	}
	return nil
}

// Clear removes the snapshot.
func (s *KVSnapshot[T]) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, s.key)
}
