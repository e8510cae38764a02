// Package server runs an http.Server until its context is cancelled, then
// shuts it down gracefully.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"resto-app/internal/logger"

	"go.uber.org/zap"
)

const ShutdownTimeout = 10 * time.Second

func New(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       requestTimeout * 2,
		WriteTimeout:      requestTimeout * 3,
		IdleTimeout:       60 * time.Second,
	}
}

// Serve listens on srv.Addr and blocks until ctx is done or the server fails.
func Serve(ctx context.Context, srv *http.Server) error {
	lis, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, srv, lis)
}

func ServeListener(ctx context.Context, srv *http.Server, lis net.Listener) error {
	log := logger.L()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
