// Package app wires configuration into the collector and the dashboard
// artifact writers shared by the command binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/green-check-collector/internal/adapter/bizinfo"
	"github.com/couchcryptid/green-check-collector/internal/adapter/jsonfile"
	kafkaadapter "github.com/couchcryptid/green-check-collector/internal/adapter/kafka"
	"github.com/couchcryptid/green-check-collector/internal/adapter/kepco"
	"github.com/couchcryptid/green-check-collector/internal/adapter/kma"
	"github.com/couchcryptid/green-check-collector/internal/adapter/naver"
	"github.com/couchcryptid/green-check-collector/internal/catalog"
	"github.com/couchcryptid/green-check-collector/internal/config"
	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/estimator"
	"github.com/couchcryptid/green-check-collector/internal/market"
	"github.com/couchcryptid/green-check-collector/internal/news"
	"github.com/couchcryptid/green-check-collector/internal/observability"
	"github.com/couchcryptid/green-check-collector/internal/pipeline"
	"github.com/couchcryptid/green-check-collector/internal/policy"
	"github.com/couchcryptid/green-check-collector/internal/random"
)

// NewCollector loads the catalog and profile and builds a collector with
// every configured adapter. The returned cleanup closes the Kafka publisher
// when one is configured.
func NewCollector(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*pipeline.Collector, func(), error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	profile, err := catalog.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}

	src := estimator.Sources{Locator: cat}
	if cfg.KMAEnabled() {
		client := kma.NewClient(cfg.KMAAPIKey, cfg.KMABaseURL, cfg.RequestTimeout, metrics, logger)
		src.Weather = kma.NewCachedForecaster(client, cfg.WeatherCacheSize, metrics)
		logger.Info("weather adapter enabled", "cache_size", cfg.WeatherCacheSize, "timeout", cfg.RequestTimeout)
	} else {
		logger.Info("weather adapter disabled, solar scores are estimated")
	}
	if cfg.KEPCOEnabled() {
		src.Grid = kepco.NewClient(cfg.KEPCOAPIKey, cfg.KEPCOBaseURL, cfg.RequestTimeout, metrics, logger)
		logger.Info("grid adapter enabled")
	} else {
		logger.Info("grid adapter disabled")
	}
	metrics.SetAdapterEnabled("kma", cfg.KMAEnabled())
	metrics.SetAdapterEnabled("kepco", cfg.KEPCOEnabled())
	metrics.SetAdapterEnabled("kafka", cfg.KafkaEnabled())

	var sinks []pipeline.ReportSink
	cleanup := func() {}
	if cfg.KafkaEnabled() {
		pub := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		sinks = append(sinks, pub)
		cleanup = func() {
			if err := pub.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}
		logger.Info("report publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}
	// The artifact is replaced only after every other sink has accepted the run.
	files := jsonfile.NewWriter(cfg.OutputDir, logger)
	sinks = append(sinks, files)
	logger.Info("report artifact", "dir", files.Dir(), "file", jsonfile.ReportsFile)

	set := estimator.NewSet(profile, random.New(cfg.RandomSeed), src, logger)
	logger.Info("catalog loaded", "regions", cat.Len())
	return pipeline.New(cat, set, sinks, cfg.RegionDelay, logger, metrics), cleanup, nil
}

// Dashboard writes the market, energy status, news, and policy artifacts.
type Dashboard struct {
	market *market.Generator
	news   *news.Feed
	policy *policy.Board
	out    *jsonfile.Writer
	logger *slog.Logger
}

// NewDashboard builds the artifact writers from cfg.
func NewDashboard(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Dashboard, error) {
	listings, err := policy.LoadListings("")
	if err != nil {
		return nil, err
	}

	var searcher news.Searcher
	if cfg.NaverEnabled() {
		searcher = naver.NewClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.NaverBaseURL, cfg.RequestTimeout, metrics, logger)
	}
	var announcements policy.Searcher
	if cfg.BizinfoEnabled() {
		announcements = bizinfo.NewClient(cfg.BizinfoAPIKey, cfg.BizinfoBaseURL, cfg.RequestTimeout, metrics, logger)
	}
	metrics.SetAdapterEnabled("naver", cfg.NaverEnabled())
	metrics.SetAdapterEnabled("bizinfo", cfg.BizinfoEnabled())

	return &Dashboard{
		market: market.NewGenerator(random.New(cfg.RandomSeed)),
		news:   news.NewFeed(searcher, logger),
		policy: policy.NewBoard(announcements, listings, logger),
		out:    jsonfile.NewWriter(cfg.OutputDir, logger),
		logger: logger,
	}, nil
}

// Write refreshes every dashboard artifact. Upstream failures degrade to
// fallback content; only write errors are returned.
func (d *Dashboard) Write(ctx context.Context) error {
	now := domain.Now()
	artifacts := []struct {
		name  string
		value any
	}{
		{jsonfile.MarketFile, d.market.Snapshot(now)},
		{jsonfile.EnergyStatusFile, d.market.EnergyStatus(now)},
		{jsonfile.NewsFile, d.news.Items(ctx, now)},
		{jsonfile.PolicyFile, d.policy.List(ctx, now)},
	}
	for _, a := range artifacts {
		if err := d.out.Write(a.name, a.value); err != nil {
			return err
		}
		d.logger.Info("artifact written", "file", a.name)
	}
	return nil
}

// Refresher runs a collection followed by a dashboard refresh.
// It implements pipeline.Runner.
type Refresher struct {
	Collector *pipeline.Collector
	Dashboard *Dashboard
	Logger    *slog.Logger
}

func (r *Refresher) Run(ctx context.Context) (domain.ReportSet, error) {
	reports, err := r.Collector.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.Dashboard.Write(ctx); err != nil {
		r.Logger.Warn("dashboard refresh failed", "error", err)
	}
	return reports, nil
}
