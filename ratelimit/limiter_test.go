package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLimiter_AllowWithinWindow(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore())
	ctx := context.Background()

	results := []bool{
		limiter.Allow(ctx, "x", 2, time.Second),
		limiter.Allow(ctx, "x", 2, time.Second),
		limiter.Allow(ctx, "x", 2, time.Second),
	}

	want := []bool{true, true, false}
	for i, r := range results {
		if r != want[i] {
			t.Fatalf("call %d: got %v, want %v (all: %v)", i+1, r, want[i], results)
		}
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore())
	now := time.Unix(1_700_000_000, 0)
	limiter.Now = func() time.Time { return now }
	ctx := context.Background()

	if !limiter.Allow(ctx, "registration", 1, time.Minute) {
		t.Fatal("first attempt should pass")
	}
	if limiter.Allow(ctx, "registration", 1, time.Minute) {
		t.Fatal("second attempt within window should be denied")
	}

	now = now.Add(61 * time.Second)
	if !limiter.Allow(ctx, "registration", 1, time.Minute) {
		t.Fatal("attempt after window expiry should pass")
	}
}

func TestLimiter_DeniedAttemptsNotRecorded(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore())
	now := time.Unix(1_700_000_000, 0)
	limiter.Now = func() time.Time { return now }
	ctx := context.Background()

	limiter.Allow(ctx, "login", 1, time.Minute)
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		limiter.Allow(ctx, "login", 1, time.Minute)
	}

	// Only the first attempt counts, so the window frees up when it ages out.
	now = now.Add(51 * time.Second)
	if !limiter.Allow(ctx, "login", 1, time.Minute) {
		t.Fatal("denied attempts must not extend the window")
	}
}

func TestLimiter_ActionsAreIndependent(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore())
	ctx := context.Background()

	if !limiter.Allow(ctx, "registration", 1, time.Minute) {
		t.Fatal("registration attempt should pass")
	}
	if !limiter.Allow(ctx, "password_reset", 1, time.Minute) {
		t.Fatal("password_reset must not share registration's window")
	}
}

type failingStore struct{}

func (failingStore) Load(ctx context.Context, key string) ([]int64, error) {
	return nil, errors.New("store down")
}

func (failingStore) Save(ctx context.Context, key string, timestamps []int64) error {
	return errors.New("store down")
}

func TestLimiter_FailsOpenOnStoreErrors(t *testing.T) {
	limiter := NewLimiter(failingStore{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if !limiter.Allow(ctx, "registration", 1, time.Minute) {
			t.Fatal("store failures must not block the action")
		}
	}
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	window, err := store.Load(ctx, "rate_limit_registration")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(window) != 0 {
		t.Fatalf("expected empty window, got %v", window)
	}

	want := []int64{1000, 2000, 3000}
	if err := store.Save(ctx, "rate_limit_registration", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	window, err = store.Load(ctx, "rate_limit_registration")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(window) != len(want) {
		t.Fatalf("got window %v, want %v", window, want)
	}
	for i := range want {
		if window[i] != want[i] {
			t.Fatalf("got window %v, want %v", window, want)
		}
	}
}

func TestLimiter_WithRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewLimiter(NewRedisStore(client, time.Hour))
	ctx := context.Background()

	results := []bool{
		limiter.Allow(ctx, "x", 2, time.Second),
		limiter.Allow(ctx, "x", 2, time.Second),
		limiter.Allow(ctx, "x", 2, time.Second),
	}
	want := []bool{true, true, false}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("redis-backed limiter: got %v, want %v", results, want)
		}
	}
}
