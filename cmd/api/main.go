package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"calculadora/internal/calculator"
	"calculadora/internal/config"
	"calculadora/internal/display"
	"calculadora/internal/observability"
	"calculadora/internal/server"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Telemetry
	shutdownTelemetry, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry setup failed", zap.Error(err))
	}
	defer shutdownTelemetry(context.Background())

	// Sessions
	store := calculator.NewStore(cfg.SessionTTL, cfg.MaxSessions)
	if err := store.RegisterCollector(prometheus.DefaultRegisterer); err != nil {
		observability.Logger.Fatal("registering session collector failed", zap.Error(err))
	}
	go store.RunSweeper(ctx, cfg.SweepInterval, func(n int) {
		if n > 0 {
			observability.Logger.Info("expired idle sessions", zap.Int("removed", n))
		}
	})

	// Router
	calc := calculator.NewHandler(store, display.NewFormatter(display.BrazilianPortuguese))
	router := server.NewRouter(calc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown failed", zap.Error(err))
		return
	}
	observability.Logger.Info("server stopped")
}
