// Command dataserver serves the JSON artifacts over HTTP and re-collects
// them on REFRESH_INTERVAL.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/green-check-collector/internal/adapter/http"
	"github.com/couchcryptid/green-check-collector/internal/app"
	"github.com/couchcryptid/green-check-collector/internal/config"
	"github.com/couchcryptid/green-check-collector/internal/observability"
	"github.com/couchcryptid/green-check-collector/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	collector, cleanup, err := app.NewCollector(cfg, logger, metrics)
	if err != nil {
		logger.Error("collector setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	dashboard, err := app.NewDashboard(cfg, logger, metrics)
	if err != nil {
		logger.Error("dashboard setup failed", "error", err)
		os.Exit(1)
	}

	refresher := &app.Refresher{Collector: collector, Dashboard: dashboard, Logger: logger}
	scheduler := pipeline.NewScheduler(refresher, cfg.RefreshInterval, nil, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.OutputDir, collector, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		cleanup()
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
