package estimator

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/couchcryptid/green-check-collector/internal/domain"
)

// The grid operator endpoints are probed but their payloads are not mapped
// to scores yet; both estimators always report Estimated.
// TODO: map KEPCO distributed-generation headroom once the response schema is published.

// GridCapacity scores distribution-line headroom.
type GridCapacity struct {
	source   GridSource
	fallback Fallback
	logger   *slog.Logger
}

// NewGridCapacity creates the grid-capacity estimator. Pass a nil source to
// skip the probe.
func NewGridCapacity(source GridSource, fallback Fallback, logger *slog.Logger) *GridCapacity {
	return &GridCapacity{source: source, fallback: fallback, logger: logger}
}

func (g *GridCapacity) Estimate(ctx context.Context, region domain.Region) domain.Estimate {
	if g.source != nil {
		probe(ctx, g.logger, "line capacity", region, g.source.LineCapacity)
	}
	return g.fallback.Estimate(region.Province)
}

// Density scores installation density (higher is less crowded).
type Density struct {
	source   GridSource
	fallback Fallback
	logger   *slog.Logger
}

// NewDensity creates the installation-density estimator. Pass a nil source
// to skip the probe.
func NewDensity(source GridSource, fallback Fallback, logger *slog.Logger) *Density {
	return &Density{source: source, fallback: fallback, logger: logger}
}

func (d *Density) Estimate(ctx context.Context, region domain.Region) domain.Estimate {
	if d.source != nil {
		probe(ctx, d.logger, "installations", region, d.source.Installations)
	}
	return d.fallback.Estimate(region.Province)
}

func probe(ctx context.Context, logger *slog.Logger, name string, region domain.Region,
	call func(context.Context, string) (json.RawMessage, error)) {
	payload, err := call(ctx, region.Province)
	if err != nil {
		logger.Warn("kepco probe failed, using estimate",
			"probe", name,
			"region", region.Code,
			"province", region.Province,
			"error", err,
		)
		return
	}
	logger.Debug("kepco probe succeeded, using estimate",
		"probe", name,
		"region", region.Code,
		"bytes", len(payload),
	)
}

// Subsidy scores local subsidy generosity. It has no upstream source.
type Subsidy struct {
	fallback Fallback
}

// NewSubsidy creates the subsidy estimator.
func NewSubsidy(fallback Fallback) *Subsidy {
	return &Subsidy{fallback: fallback}
}

func (s *Subsidy) Estimate(_ context.Context, region domain.Region) domain.Estimate {
	return s.fallback.Estimate(region.Province)
}
