package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mealdb/internal/catalog"
	"mealdb/internal/config"
	"mealdb/internal/recipes"
	"mealdb/internal/static"
	"mealdb/internal/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newMux(cfg *config.Config, be backend) *http.ServeMux {
	mux := http.NewServeMux()

	fetcher := catalog.New(be, cfg.MealDB.Concurrency)
	recipes.NewHandler(fetcher, be).Register(mux)
	static.Register(mux)

	ro := &readyOnce{}
	ro.Add(be)
	mux.Handle("GET /ready", ro)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func runServer(ctx context.Context, cfg *config.Config, addr string) error {
	if err := templates.Init(static.StyleAssetPath); err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	be, err := newBackend(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           WithMiddleware(newMux(cfg, be)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Serving MealDB", "address", addr, "mocks", cfg.Mocks.Enable)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		return gracefulShutdown(server)
	}
}

func gracefulShutdown(svr *http.Server) error {
	// Give outstanding requests 25 seconds to complete (kubernetes has 30 second grace period)
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		// Force close after timeout
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}
	slog.Info("Server stopped")
	return nil
}
