// Command web serves the storefront pages and talks to the api backend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resto-app/internal/auth"
	"resto-app/internal/cart"
	"resto-app/internal/client"
	"resto-app/internal/config"
	"resto-app/internal/logger"
	"resto-app/internal/middleware"
	"resto-app/internal/server"
	"resto-app/internal/state"
	"resto-app/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv, "web")
	defer logger.Sync()

	store, closeStore, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	handler, err := newHandler(ctx, cfg, store)
	if err != nil {
		return err
	}

	logger.L().Info("starting web",
		zap.String("port", cfg.WebPort),
		zap.String("api", cfg.APIBaseURL),
		zap.String("state", cfg.StateDriver),
	)
	return server.Serve(ctx, server.New(":"+cfg.WebPort, handler, cfg.RequestTimeout))
}

func openState(ctx context.Context, cfg *config.Config) (state.Store, func() error, error) {
	switch cfg.StateDriver {
	case config.StateMemory:
		return state.NewMemoryStore(), func() error { return nil }, nil

	case config.StateRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis at %s: %w", cfg.RedisAddr, err)
		}
		return state.NewRedisStore(rdb, state.DefaultTTL), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown state driver: %s", cfg.StateDriver)
	}
}

func newHandler(ctx context.Context, cfg *config.Config, store state.Store) (http.Handler, error) {
	backend := client.New(cfg.APIBaseURL, cfg.RequestTimeout)

	app, err := web.NewApp(
		auth.NewService(backend, store),
		cart.NewService(store, backend),
		backend,
		backend,
	)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	tokens := state.NewTokens(cfg.JWTSecret, state.DefaultTTL)
	limiter := middleware.NewLimiter(ctx, cfg.RateLimit)

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"backend": backend.Stats(),
		})
	})
	r.Mount("/", app.Handler(
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		chimw.Recoverer,
		state.Middleware(tokens, cfg.AppEnv == "production"),
		limiter.Middleware,
	))

	return otelhttp.NewHandler(r, "web"), nil
}
