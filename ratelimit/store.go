// Package ratelimit implements a sliding-window throttle over an injected
// store. It is advisory only: store failures never block the caller.
package ratelimit

import (
	"context"
	"sync"
)

// Store persists per-action attempt windows as ordered epoch-millisecond
// timestamps. Implementations are keyed by the full namespaced key and must
// tolerate concurrent access for distinct keys.
type Store interface {
	Load(ctx context.Context, key string) ([]int64, error)
	Save(ctx context.Context, key string, timestamps []int64) error
}

// MemoryStore keeps windows in process memory. It is the default store and
// stands in for distributed storage in single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]int64
}

// NewMemoryStore creates an empty in-memory window store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]int64)}
}

// Load returns a copy of the stored window for key.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.windows[key]
	if !ok {
		return nil, nil
	}
	out := make([]int64, len(stored))
	copy(out, stored)
	return out, nil
}

// Save replaces the stored window for key.
func (s *MemoryStore) Save(ctx context.Context, key string, timestamps []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]int64, len(timestamps))
	copy(stored, timestamps)
	s.windows[key] = stored
	return nil
}
