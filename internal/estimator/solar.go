package estimator

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/green-check-collector/internal/domain"
)

// Solar scores solar potential from the village forecast, falling back to
// the regional estimate when the forecast is unavailable or unusable.
type Solar struct {
	weather  WeatherSource
	grid     GridLocator
	fallback Fallback
	logger   *slog.Logger
}

// NewSolar creates the solar estimator. Pass a nil weather source to always
// estimate.
func NewSolar(weather WeatherSource, grid GridLocator, fallback Fallback, logger *slog.Logger) *Solar {
	return &Solar{weather: weather, grid: grid, fallback: fallback, logger: logger}
}

func (s *Solar) Estimate(ctx context.Context, region domain.Region) domain.Estimate {
	if s.weather == nil {
		return s.fallback.Estimate(region.Province)
	}

	point, ok := s.grid.GridPoint(region.Province)
	if !ok {
		s.logger.Warn("no forecast grid cell for province, using estimate",
			"region", region.Code,
			"province", region.Province,
		)
		return s.fallback.Estimate(region.Province)
	}

	bucket := domain.ForecastBucketAt(domain.Now())
	items, err := s.weather.Forecast(ctx, point, bucket)
	if err != nil {
		s.logger.Warn("weather lookup failed, using estimate",
			"region", region.Code,
			"province", region.Province,
			"base", bucket.String(),
			"error", err,
		)
		return s.fallback.Estimate(region.Province)
	}

	score, err := domain.SolarScoreFromForecast(items)
	if err != nil {
		s.logger.Warn("forecast unusable, using estimate",
			"region", region.Code,
			"items", len(items),
			"error", err,
		)
		return s.fallback.Estimate(region.Province)
	}
	return domain.Real(domain.IndicatorSolar, score)
}
