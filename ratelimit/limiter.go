package ratelimit

import (
	"context"
	"log"
	"time"
)

const keyPrefix = "rate_limit_"

// Limiter applies a sliding-window throttle per action key. The window store
// is an explicit dependency so callers decide its scope and lifecycle.
type Limiter struct {
	store Store

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewLimiter creates a limiter over the given store.
func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store, Now: time.Now}
}

// Allow reports whether another attempt for action fits within limit attempts
// per window. Allowed attempts are recorded; denied attempts are not. Store
// failures fail open: the throttle is a soft guard, not a security boundary.
func (l *Limiter) Allow(ctx context.Context, action string, limit int, window time.Duration) bool {
	key := keyPrefix + action
	now := l.Now().UnixMilli()
	cutoff := now - window.Milliseconds()

	stored, err := l.store.Load(ctx, key)
	if err != nil {
		log.Printf("ratelimit: load %q failed, allowing: %v", action, err)
		return true
	}

	valid := stored[:0]
	for _, ts := range stored {
		if ts > cutoff {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= limit {
		return false
	}

	valid = append(valid, now)
	if err := l.store.Save(ctx, key, valid); err != nil {
		log.Printf("ratelimit: save %q failed, allowing: %v", action, err)
	}
	return true
}
