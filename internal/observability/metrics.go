package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "green_check"

// Metrics holds the Prometheus counters, histograms, and gauges for collection runs.
type Metrics struct {
	RegionsCollected prometheus.Counter
	RunsFailed       prometheus.Counter
	RunDuration      prometheus.Histogram
	LastRunSuccess   prometheus.Gauge

	// Indicator provenance.
	Estimates *prometheus.CounterVec // labels: indicator={solar,grid,density,subsidy}, provenance={real,estimated}

	// Grade distribution of the latest run.
	GradeRegions *prometheus.GaugeVec // labels: grade={S,A,B,C,D}

	// Upstream adapter metrics.
	AdapterRequests *prometheus.CounterVec   // labels: adapter, outcome={success,error}
	AdapterDuration *prometheus.HistogramVec // labels: adapter
	AdapterEnabled  *prometheus.GaugeVec     // labels: adapter
	ForecastCache   *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RegionsCollected,
		m.RunsFailed,
		m.RunDuration,
		m.LastRunSuccess,
		m.Estimates,
		m.GradeRegions,
		m.AdapterRequests,
		m.AdapterDuration,
		m.AdapterEnabled,
		m.ForecastCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RegionsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regions_collected_total",
			Help:      "Total region reports produced.",
		}),
		RunsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_failed_total",
			Help:      "Collection runs aborted before the artifact was written.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete collection run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success_timestamp_seconds",
			Help:      "Unix time of the last successful collection run.",
		}),
		Estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indicator_estimates_total",
			Help:      "Indicator scores by indicator and provenance.",
		}, []string{"indicator", "provenance"}),
		GradeRegions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grade_regions",
			Help:      "Regions per grade in the latest run.",
		}, []string{"grade"}),
		AdapterRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_requests_total",
			Help:      "Upstream API requests by adapter and outcome.",
		}, []string{"adapter", "outcome"}),
		AdapterDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "adapter_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"adapter"}),
		AdapterEnabled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "adapter_enabled",
			Help:      "1 when the adapter has credentials configured, 0 otherwise.",
		}, []string{"adapter"}),
		ForecastCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_cache_total",
			Help:      "Forecast cache lookups by result.",
		}, []string{"result"}),
	}
}

// SetAdapterEnabled records whether an adapter is configured.
func (m *Metrics) SetAdapterEnabled(adapter string, enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	m.AdapterEnabled.WithLabelValues(adapter).Set(v)
}

// WriteTextfile exports the default registry in the node_exporter textfile
// format. The write is atomic.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
