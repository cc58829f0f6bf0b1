// Command marketdata refreshes the dashboard artifacts: market prices,
// power supply status, news headlines, and subsidy programmes.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/green-check-collector/internal/app"
	"github.com/couchcryptid/green-check-collector/internal/config"
	"github.com/couchcryptid/green-check-collector/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dashboard, err := app.NewDashboard(cfg, logger, metrics)
	if err != nil {
		logger.Error("dashboard setup failed", "error", err)
		os.Exit(1)
	}
	if err := dashboard.Write(ctx); err != nil {
		logger.Error("dashboard refresh failed", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("data fetch completed", "output", cfg.OutputDir)
}
