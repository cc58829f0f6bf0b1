// Package pipeline drives collection runs over the region catalog.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/observability"
	sharedretry "github.com/couchcryptid/storm-data-shared/retry"
)

// RegionSource lists the regions to collect, in catalog order.
type RegionSource interface {
	Regions() []domain.Region
}

// Assessor produces the four indicator estimates of a region.
type Assessor interface {
	Assess(ctx context.Context, region domain.Region) domain.Assessment
}

// ReportSink persists the complete report set of a run. Sinks run in order
// and the first failure aborts the rest, so the file sink that replaces the
// served artifact goes last.
type ReportSink interface {
	WriteReports(ctx context.Context, run domain.Run, reports domain.ReportSet) error
}

// Collector runs the region loop: assess, score, summarize, accumulate, then
// hand the full set to every sink.
type Collector struct {
	regions  RegionSource
	assessor Assessor
	sinks    []ReportSink
	delay    time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Collector. delay is the pause between consecutive regions.
func New(regions RegionSource, assessor Assessor, sinks []ReportSink, delay time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Collector {
	return &Collector{
		regions:  regions,
		assessor: assessor,
		sinks:    sinks,
		delay:    delay,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a run has completed successfully.
func (c *Collector) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("no collection run has completed yet")
	}
	return nil
}

// Run collects every region and writes the result to the sinks. Estimator
// failures never abort a run. A duplicate region code, cancellation, or a
// sink error does, and no sink sees a partial set.
func (c *Collector) Run(ctx context.Context) (domain.ReportSet, error) {
	start := time.Now()
	reports, err := c.run(ctx)
	c.metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.RunsFailed.Inc()
		c.metrics.LastRunSuccess.Set(0)
		return nil, err
	}
	c.metrics.LastRunSuccess.Set(1)
	c.ready.Store(true)
	return reports, nil
}

func (c *Collector) run(ctx context.Context) (domain.ReportSet, error) {
	run := domain.NewRun()
	regions := c.regions.Regions()
	c.logger.Info("collection started", "run_id", run.ID, "regions", len(regions))

	reports := make(domain.ReportSet, len(regions))
	for i, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collection interrupted at %s: %w", region.Code, err)
		}
		if _, dup := reports[region.Code]; dup {
			return nil, fmt.Errorf("duplicate region code %q", region.Code)
		}

		report := domain.NewRegionReport(region, c.assessor.Assess(ctx, region))
		reports[region.Code] = report
		c.recordEstimates(report)

		c.logger.Info("region collected",
			"progress", fmt.Sprintf("%d/%d", i+1, len(regions)),
			"region", region.Code,
			"name", region.Name,
			"total", report.TotalScore,
			"grade", report.Grade,
		)

		if i < len(regions)-1 && !sharedretry.SleepWithContext(ctx, c.delay) {
			return nil, fmt.Errorf("collection interrupted after %s: %w", region.Code, ctx.Err())
		}
	}

	for _, sink := range c.sinks {
		if err := sink.WriteReports(ctx, run, reports); err != nil {
			return nil, fmt.Errorf("write reports: %w", err)
		}
	}

	c.metrics.RegionsCollected.Add(float64(len(reports)))
	c.logGradeDistribution(run, reports)
	return reports, nil
}

func (c *Collector) recordEstimates(report domain.RegionReport) {
	for ind, prov := range report.Sources {
		c.metrics.Estimates.WithLabelValues(string(ind), string(prov)).Inc()
	}
}

// logGradeDistribution logs per-grade counts, omitting empty grades, and
// refreshes the grade gauge for every grade.
func (c *Collector) logGradeDistribution(run domain.Run, reports domain.ReportSet) {
	counts := reports.GradeCounts()
	attrs := []any{"run_id", run.ID, "regions", len(reports)}
	for _, g := range domain.Grades() {
		c.metrics.GradeRegions.WithLabelValues(string(g)).Set(float64(counts[g]))
		if counts[g] > 0 {
			attrs = append(attrs, string(g), counts[g])
		}
	}
	c.logger.Info("grade distribution", attrs...)
}
