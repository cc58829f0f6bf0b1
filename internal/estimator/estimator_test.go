package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/green-check-collector/internal/catalog"
	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/random"
)

const (
	seoul   = "서울특별시"
	jeju    = "제주특별자치도"
	gangwon = "강원도"
	chungn  = "충청남도"
	gyeongg = "경기도"
)

// --- mocks ---

type mockWeather struct {
	items   []domain.ForecastItem
	err     error
	calls   int
	buckets []domain.ForecastBucket
}

func (m *mockWeather) Forecast(_ context.Context, _ domain.GridPoint, b domain.ForecastBucket) ([]domain.ForecastItem, error) {
	m.calls++
	m.buckets = append(m.buckets, b)
	return m.items, m.err
}

type mockGrid struct {
	err                error
	capacityCalls      int
	installationsCalls int
}

func (m *mockGrid) LineCapacity(_ context.Context, _ string) (json.RawMessage, error) {
	m.capacityCalls++
	return json.RawMessage(`{"items":[]}`), m.err
}

func (m *mockGrid) Installations(_ context.Context, _ string) (json.RawMessage, error) {
	m.installationsCalls++
	return json.RawMessage(`{"items":[]}`), m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProfile(t *testing.T) *catalog.Profile {
	t.Helper()
	p, err := catalog.LoadProfile("")
	require.NoError(t, err)
	return p
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return c
}

func region(province string) domain.Region {
	return domain.Region{Code: "00000", Name: "테스트시", Province: province}
}

// --- fallback bias rules ---

// countingSource counts the values drawn from the wrapped source.
type countingSource struct {
	random.Source
	draws int
}

func (c *countingSource) Uniform(lo, hi float64) float64 {
	c.draws++
	return c.Source.Uniform(lo, hi)
}

func (c *countingSource) IntBetween(lo, hi int) int {
	c.draws++
	return c.Source.IntBetween(lo, hi)
}

func TestFallback_BiasRules(t *testing.T) {
	p := testProfile(t)
	tests := []struct {
		name      string
		ind       domain.Indicator
		province  string
		fractions []float64
		want      float64
		draws     int
	}{
		{"solar base only", domain.IndicatorSolar, seoul, []float64{0.5}, 77.5, 1},
		{"solar southern min bonus", domain.IndicatorSolar, jeju, []float64{0, 0}, 65, 2},
		{"solar southern capped", domain.IndicatorSolar, jeju, []float64{1, 1}, 100, 2},
		{"solar mountainous floored", domain.IndicatorSolar, gangwon, []float64{0, 1}, 50, 2},
		{"grid major city ceiling", domain.IndicatorGrid, seoul, []float64{1, 0}, 30, 2},
		{"grid rural floor", domain.IndicatorGrid, gangwon, []float64{0, 1}, 85, 2},
		{"grid other province", domain.IndicatorGrid, gyeongg, []float64{0}, 40, 1},
		{"density rural floor", domain.IndicatorDensity, gangwon, []float64{0, 0}, 60, 2},
		{"density large city ceiling", domain.IndicatorDensity, seoul, []float64{1, 0}, 20, 2},
		{"subsidy regional bonus", domain.IndicatorSubsidy, chungn, []float64{0, 0}, 55, 2},
		{"subsidy special capped", domain.IndicatorSubsidy, jeju, []float64{1, 1}, 100, 2},
		{"subsidy no bonus", domain.IndicatorSubsidy, seoul, []float64{1}, 90, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := &countingSource{Source: random.NewSequence(tt.fractions...)}
			got := NewFallback(tt.ind, p, seq).Estimate(tt.province)

			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.ind, got.Indicator)
			assert.Equal(t, domain.ProvenanceEstimated, got.Provenance)
			assert.Equal(t, tt.draws, seq.draws)
		})
	}
}

func TestFallback_BoundsOverManyDraws(t *testing.T) {
	p := testProfile(t)
	c := testCatalog(t)
	rng := random.New(2024)

	for range 200 {
		for _, r := range c.Regions() {
			for _, ind := range domain.Indicators() {
				e := NewFallback(ind, p, rng).Estimate(r.Province)
				require.True(t, domain.InRange(e.Value), "%s %s = %.1f", ind, r.Province, e.Value)
				assert.Equal(t, domain.Round1(e.Value), e.Value)
			}
		}
	}
}

func TestFallback_ProvinceBounds(t *testing.T) {
	p := testProfile(t)
	rng := random.New(7)

	for range 2000 {
		assert.GreaterOrEqual(t, NewFallback(domain.IndicatorSolar, p, rng).Estimate(jeju).Value, 65.0)
		assert.GreaterOrEqual(t, NewFallback(domain.IndicatorSolar, p, rng).Estimate(gangwon).Value, 50.0)
		assert.LessOrEqual(t, NewFallback(domain.IndicatorGrid, p, rng).Estimate(seoul).Value, 60.0)
		assert.GreaterOrEqual(t, NewFallback(domain.IndicatorGrid, p, rng).Estimate(gangwon).Value, 60.0)
		assert.GreaterOrEqual(t, NewFallback(domain.IndicatorDensity, p, rng).Estimate(gangwon).Value, 60.0)
		assert.LessOrEqual(t, NewFallback(domain.IndicatorDensity, p, rng).Estimate(seoul).Value, 50.0)
		assert.GreaterOrEqual(t, NewFallback(domain.IndicatorSubsidy, p, rng).Estimate(jeju).Value, 60.0)
	}
}

func TestFallback_SouthernSolarMeanIsHigher(t *testing.T) {
	p := testProfile(t)
	fb := NewFallback(domain.IndicatorSolar, p, random.New(99))

	const n = 5000
	var southern, other float64
	for range n {
		southern += fb.Estimate(jeju).Value
		other += fb.Estimate(gyeongg).Value
	}
	assert.Greater(t, southern/n, other/n+5)
}

// --- solar ---

func TestSolar_NilWeatherUsesFallback(t *testing.T) {
	s := NewSolar(nil, testCatalog(t), NewFallback(domain.IndicatorSolar, testProfile(t), random.NewSequence(0)), discardLogger())

	got := s.Estimate(context.Background(), region(seoul))

	assert.Equal(t, domain.Estimated(domain.IndicatorSolar, 60), got)
}

func TestSolar_RealForecast(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) // 09:00 KST
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	weather := &mockWeather{items: []domain.ForecastItem{
		{Category: "SKY", Value: "1"},
		{Category: "SKY", Value: "3"},
		{Category: "PTY", Value: "0"},
	}}
	s := NewSolar(weather, testCatalog(t), NewFallback(domain.IndicatorSolar, testProfile(t), random.NewSequence()), discardLogger())

	got := s.Estimate(context.Background(), region(seoul))

	assert.Equal(t, domain.Real(domain.IndicatorSolar, 80), got)
	require.Len(t, weather.buckets, 1)
	assert.Equal(t, domain.ForecastBucket{BaseDate: "20250601", BaseTime: "0800"}, weather.buckets[0])
}

func TestSolar_DegradesToEstimate(t *testing.T) {
	tests := []struct {
		name     string
		weather  *mockWeather
		province string
		calls    int
	}{
		{"adapter error", &mockWeather{err: errors.New("status 503")}, seoul, 1},
		{"no sky data", &mockWeather{items: []domain.ForecastItem{{Category: "TMP", Value: "20"}}}, seoul, 1},
		{"unknown province", &mockWeather{}, "없는도", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolar(tt.weather, testCatalog(t),
				NewFallback(domain.IndicatorSolar, testProfile(t), random.NewSequence(0)), discardLogger())

			got := s.Estimate(context.Background(), region(tt.province))

			assert.Equal(t, domain.ProvenanceEstimated, got.Provenance)
			assert.Equal(t, 60.0, got.Value)
			assert.Equal(t, tt.calls, tt.weather.calls)
		})
	}
}

// --- grid and density ---

func TestGridCapacity_ProbeResultDiscarded(t *testing.T) {
	for _, probeErr := range []error{nil, errors.New("timeout")} {
		src := &mockGrid{err: probeErr}
		g := NewGridCapacity(src, NewFallback(domain.IndicatorGrid, testProfile(t), random.NewSequence(0)), discardLogger())

		got := g.Estimate(context.Background(), region(gyeongg))

		assert.Equal(t, domain.Estimated(domain.IndicatorGrid, 40), got)
		assert.Equal(t, 1, src.capacityCalls)
		assert.Zero(t, src.installationsCalls)
	}
}

func TestDensity_ProbeResultDiscarded(t *testing.T) {
	src := &mockGrid{}
	d := NewDensity(src, NewFallback(domain.IndicatorDensity, testProfile(t), random.NewSequence(1)), discardLogger())

	got := d.Estimate(context.Background(), region(gyeongg))

	assert.Equal(t, domain.Estimated(domain.IndicatorDensity, 85), got)
	assert.Equal(t, 1, src.installationsCalls)
}

func TestNilSourcesNeverProbe(t *testing.T) {
	p := testProfile(t)
	g := NewGridCapacity(nil, NewFallback(domain.IndicatorGrid, p, random.New(1)), discardLogger())
	d := NewDensity(nil, NewFallback(domain.IndicatorDensity, p, random.New(1)), discardLogger())

	assert.True(t, domain.InRange(g.Estimate(context.Background(), region(seoul)).Value))
	assert.True(t, domain.InRange(d.Estimate(context.Background(), region(seoul)).Value))
}

// --- set ---

func TestSet_Assess(t *testing.T) {
	p := testProfile(t)
	seq := random.NewSequence(0)
	set := NewSet(p, seq, Sources{Locator: testCatalog(t)}, discardLogger())

	a := set.Assess(context.Background(), region(gyeongg))

	assert.Equal(t, domain.Scores{Solar: 60, Grid: 40, Density: 20, Subsidy: 50}, a.Scores())
	for _, prov := range a.Sources() {
		assert.Equal(t, domain.ProvenanceEstimated, prov)
	}
}
