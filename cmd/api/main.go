// Command api serves the mock REST backend: users, products and orders.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resto-app/internal/api"
	"resto-app/internal/config"
	"resto-app/internal/db"
	"resto-app/internal/jsondb"
	"resto-app/internal/logger"
	"resto-app/internal/middleware"
	"resto-app/internal/order"
	"resto-app/internal/product"
	"resto-app/internal/seed"
	"resto-app/internal/server"
	"resto-app/internal/user"

	chimw "github.com/go-chi/chi/v5/middleware"
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

	logger.Init(cfg.AppEnv, "api")
	defer logger.Sync()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	if err := seed.Run(ctx, st.users, st.products); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	logger.L().Info("starting api",
		zap.String("port", cfg.APIPort),
		zap.String("storage", cfg.StorageDriver),
	)
	return server.Serve(ctx, server.New(":"+cfg.APIPort, newHandler(ctx, cfg, st), cfg.RequestTimeout))
}

type storage struct {
	users    user.Repository
	products product.Repository
	orders   order.Repository
	close    func() error
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageFile:
		fileDB, err := jsondb.Open(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:    fileDB.Users(),
			products: fileDB.Products(),
			orders:   fileDB.Orders(),
			close:    func() error { return nil },
		}, nil

	case config.StoragePostgres:
		database, err := db.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return postgresStorage(database), nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

func postgresStorage(database *sql.DB) *storage {
	return &storage{
		users:    user.NewRepository(database),
		products: product.NewRepository(database),
		orders:   order.NewRepository(database),
		close:    database.Close,
	}
}

func newHandler(ctx context.Context, cfg *config.Config, st *storage) http.Handler {
	limiter := middleware.NewLimiter(ctx, cfg.RateLimit)

	router := api.NewRouter(
		api.NewHandler(st.users, st.products, st.orders),
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		chimw.Recoverer,
		middleware.CORS(cfg.CORSOrigin),
		limiter.Middleware,
	)
	return otelhttp.NewHandler(router, "api")
}
