package kma

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingForecaster struct {
	calls int
	items []domain.ForecastItem
	err   error
}

func (m *countingForecaster) Forecast(_ context.Context, _ domain.GridPoint, _ domain.ForecastBucket) ([]domain.ForecastItem, error) {
	m.calls++
	return m.items, m.err
}

var skyClear = []domain.ForecastItem{{Category: domain.CategorySky, Date: "20250601", Time: "0600", Value: "1"}}

func TestCachedForecaster_Hit(t *testing.T) {
	inner := &countingForecaster{items: skyClear}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedForecaster(inner, 10, metrics)

	first, err := cached.Forecast(context.Background(), testPoint, testBucket)
	require.NoError(t, err)
	second, err := cached.Forecast(context.Background(), testPoint, testBucket)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ForecastCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ForecastCache.WithLabelValues("miss")))
}

func TestCachedForecaster_KeyIncludesBucket(t *testing.T) {
	inner := &countingForecaster{items: skyClear}
	cached := NewCachedForecaster(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.Forecast(context.Background(), testPoint, testBucket)
	_, _ = cached.Forecast(context.Background(), testPoint, domain.ForecastBucket{BaseDate: "20250601", BaseTime: "0800"})
	_, _ = cached.Forecast(context.Background(), domain.GridPoint{NX: 98, NY: 76}, testBucket)

	assert.Equal(t, 3, inner.calls)
}

func TestCachedForecaster_ErrorsNotCached(t *testing.T) {
	inner := &countingForecaster{err: errors.New("timeout")}
	cached := NewCachedForecaster(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.Forecast(context.Background(), testPoint, testBucket)
	require.Error(t, err)
	_, err = cached.Forecast(context.Background(), testPoint, testBucket)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedForecaster_EmptyNotCached(t *testing.T) {
	inner := &countingForecaster{}
	cached := NewCachedForecaster(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.Forecast(context.Background(), testPoint, testBucket)
	_, _ = cached.Forecast(context.Background(), testPoint, testBucket)

	assert.Equal(t, 2, inner.calls)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache[int](2)
	c.put("a", 1)
	c.put("b", 2)
	c.get("a")
	c.put("c", 3)

	_, ok := c.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache[string](2)
	c.put("a", "old")
	c.put("a", "new")

	v, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_MinimumSize(t *testing.T) {
	c := newLRUCache[int](0)
	c.put("a", 1)
	c.put("b", 2)
	assert.Equal(t, 1, c.len())
}
