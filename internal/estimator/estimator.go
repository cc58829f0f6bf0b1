// Package estimator produces the four indicator scores of a region. Each
// estimator tries its upstream source when one is configured and degrades to
// a bias-adjusted randomized estimate on any failure.
package estimator

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/couchcryptid/green-check-collector/internal/catalog"
	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/random"
)

// Estimator scores one indicator for a region. It never fails: upstream
// errors are absorbed into an Estimated result.
type Estimator interface {
	Estimate(ctx context.Context, region domain.Region) domain.Estimate
}

// WeatherSource returns village forecast items for a grid cell.
type WeatherSource interface {
	Forecast(ctx context.Context, point domain.GridPoint, bucket domain.ForecastBucket) ([]domain.ForecastItem, error)
}

// GridLocator resolves a province to its forecast grid cell.
type GridLocator interface {
	GridPoint(province string) (domain.GridPoint, bool)
}

// GridSource probes the grid operator's open data endpoints.
type GridSource interface {
	LineCapacity(ctx context.Context, province string) (json.RawMessage, error)
	Installations(ctx context.Context, province string) (json.RawMessage, error)
}

// Fallback draws a randomized estimate shaped by an indicator profile.
type Fallback struct {
	indicator domain.Indicator
	profile   catalog.IndicatorProfile
	rng       random.Source
}

// NewFallback creates a fallback estimator for one indicator.
func NewFallback(ind domain.Indicator, profile *catalog.Profile, rng random.Source) Fallback {
	return Fallback{indicator: ind, profile: profile.For(ind), rng: rng}
}

// Estimate draws the base value, applies matching adjustments in profile
// order, then clamps and rounds.
func (f Fallback) Estimate(province string) domain.Estimate {
	v := f.rng.Uniform(f.profile.Base.Min, f.profile.Base.Max)
	for _, adj := range f.profile.Adjustments {
		if !adj.Applies(province) {
			continue
		}
		v = adj.Apply(v, f.rng.Uniform(adj.Range.Min, adj.Range.Max))
	}
	return domain.Estimated(f.indicator, v)
}

// Set bundles the four estimators used by a collection run.
type Set struct {
	Solar   Estimator
	Grid    Estimator
	Density Estimator
	Subsidy Estimator
}

// Assess runs all four estimators for a region.
func (s Set) Assess(ctx context.Context, region domain.Region) domain.Assessment {
	return domain.Assessment{
		Solar:   s.Solar.Estimate(ctx, region),
		Grid:    s.Grid.Estimate(ctx, region),
		Density: s.Density.Estimate(ctx, region),
		Subsidy: s.Subsidy.Estimate(ctx, region),
	}
}

// Sources holds the optional upstream adapters. Nil fields disable the
// corresponding real path.
type Sources struct {
	Weather WeatherSource
	Locator GridLocator
	Grid    GridSource
}

// NewSet wires the four estimators around one profile and random source.
func NewSet(profile *catalog.Profile, rng random.Source, src Sources, logger *slog.Logger) Set {
	return Set{
		Solar:   NewSolar(src.Weather, src.Locator, NewFallback(domain.IndicatorSolar, profile, rng), logger),
		Grid:    NewGridCapacity(src.Grid, NewFallback(domain.IndicatorGrid, profile, rng), logger),
		Density: NewDensity(src.Grid, NewFallback(domain.IndicatorDensity, profile, rng), logger),
		Subsidy: NewSubsidy(NewFallback(domain.IndicatorSubsidy, profile, rng)),
	}
}
