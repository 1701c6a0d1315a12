package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists attempt windows in Redis so limits hold across
// instances. Keys expire on their own after the retention period.
type RedisStore struct {
	client    redis.UniversalClient
	retention time.Duration
}

// NewRedisStore creates a Redis-backed window store. Retention bounds how long
// an idle window survives and should be at least the largest configured
// window.
func NewRedisStore(client redis.UniversalClient, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = time.Hour
	}
	return &RedisStore{client: client, retention: retention}
}

// Load fetches and decodes the stored window for key.
func (s *RedisStore) Load(ctx context.Context, key string) ([]int64, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ratelimit: load window: %w", err)
	}

	var timestamps []int64
	if err := json.Unmarshal([]byte(raw), &timestamps); err != nil {
		return nil, fmt.Errorf("ratelimit: decode window: %w", err)
	}
	return timestamps, nil
}

// Save encodes and stores the window for key with the retention TTL.
func (s *RedisStore) Save(ctx context.Context, key string, timestamps []int64) error {
	raw, err := json.Marshal(timestamps)
	if err != nil {
		return fmt.Errorf("ratelimit: encode window: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, s.retention).Err(); err != nil {
		return fmt.Errorf("ratelimit: save window: %w", err)
	}
	return nil
}
