package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"domiva/account"
	"domiva/config"
	"domiva/db"
	"domiva/httpapi"
	"domiva/listing"
	"domiva/profile"
	"domiva/ratelimit"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("missing JWT secret; set auth.jwt_secret or JWT_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	store, cleanup := newRateLimitStore(cfg.Redis)
	defer cleanup()
	limiter := ratelimit.NewLimiter(store)

	accounts := account.NewService(account.NewRepository(pool), account.LogMailer{}, cfg.Auth.JWTSecret)
	profiles := profile.NewService(profile.NewRepository(pool))
	listings := listing.NewService(listing.NewRepository(pool))

	api := httpapi.NewServer(accounts, profiles, listings, limiter, cfg.RateLimit, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newRateLimitStore picks the throttle backend: redis when configured so the
// window survives restarts and spans instances, in-process memory otherwise.
func newRateLimitStore(cfg config.RedisConfig) (ratelimit.Store, func()) {
	if cfg.Addr == "" {
		return ratelimit.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return ratelimit.NewRedisStore(client, time.Hour), func() {
		if err := client.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}
}
