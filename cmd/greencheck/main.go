// Command greencheck collects the regional green-check indicators once and
// writes location-master.json.
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

	code := run(ctx, cfg, logger, metrics)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics textfile write failed", "path", cfg.MetricsTextfile, "error", err)
		}
	}
	if code != 0 {
		stop()
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) int {
	collector, cleanup, err := app.NewCollector(cfg, logger, metrics)
	if err != nil {
		logger.Error("collector setup failed", "error", err)
		return 1
	}
	defer cleanup()

	if _, err := collector.Run(ctx); err != nil {
		logger.Error("collection failed", "error", err)
		return 1
	}
	logger.Info("collection complete", "output", cfg.OutputDir)
	return 0
}
