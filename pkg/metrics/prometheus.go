// Package metrics provides Prometheus metrics for the rivers
// prediction service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the prediction service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         *prometheus.Registry

	// Core business metrics.
	predictionsServed prometheus.Counter
	predictionErrors  *prometheus.CounterVec
	predictionLatency prometheus.Histogram
	confidenceSpread  prometheus.Histogram

	// Snapshot metrics.
	snapshotInstalls prometheus.Counter
	snapshotPlays    prometheus.Gauge
	snapshotSeasons  prometheus.Gauge
	snapshotTeams    prometheus.Gauge

	// Preflight metrics.
	validationFailures *prometheus.CounterVec

	// Batch pipeline metrics.
	batchQueueSize     prometheus.Gauge
	batchQueueCapacity prometheus.Gauge
	workerCount        prometheus.Gauge

	// HTTP performance metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rivers",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.NewRegistry(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictionsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of predictions served",
	})

	m.predictionErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_errors_total",
		Help:      "Prediction failures by error code",
	}, []string{"code"})

	m.predictionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_milliseconds",
		Help:      "Histogram of end-to-end prediction latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.confidenceSpread = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_confidence",
		Help:      "Distribution of prediction confidence (0.5..1.0)",
		Buckets:   []float64{0.5, 0.55, 0.6, 0.65, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1.0},
	})

	m.snapshotInstalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_installs_total",
		Help:      "Total number of data snapshots installed",
	})

	m.snapshotPlays = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_plays",
		Help:      "Play rows in the active snapshot",
	})

	m.snapshotSeasons = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_seasons",
		Help:      "Seasons loaded in the active snapshot",
	})

	m.snapshotTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_teams",
		Help:      "Teams present in the active snapshot",
	})

	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Preflight validation failures by check",
	}, []string{"check"})

	m.batchQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_size",
		Help:      "Current size of the batch matchup queue",
	})

	m.batchQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_capacity",
		Help:      "Capacity of the batch matchup queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of batch prediction workers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint and status",
	}, []string{"endpoint", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})
}

// Handler returns an http.Handler serving the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Handler returns the global /metrics handler.
func Handler() http.Handler { return globalManager.Handler() }

// Package-level record helpers, mirroring the manager's metric set.

// RecordPrediction counts one served prediction and its confidence.
func RecordPrediction(confidence float64) {
	globalManager.predictionsServed.Inc()
	globalManager.confidenceSpread.Observe(confidence)
}

// RecordPredictionError counts a failure by error code.
func RecordPredictionError(code string) {
	globalManager.predictionErrors.WithLabelValues(code).Inc()
}

// RecordPredictionLatency observes end-to-end latency in milliseconds.
func RecordPredictionLatency(ms float64) {
	globalManager.predictionLatency.Observe(ms)
}

// RecordSnapshotInstall updates the snapshot gauges.
func RecordSnapshotInstall(plays, seasons, teams int) {
	globalManager.snapshotInstalls.Inc()
	globalManager.snapshotPlays.Set(float64(plays))
	globalManager.snapshotSeasons.Set(float64(seasons))
	globalManager.snapshotTeams.Set(float64(teams))
}

// RecordValidationFailure counts a preflight failure by check name.
func RecordValidationFailure(check string) {
	globalManager.validationFailures.WithLabelValues(check).Inc()
}

// UpdateBatchQueueSize sets the batch queue depth gauge.
func UpdateBatchQueueSize(n int) { globalManager.batchQueueSize.Set(float64(n)) }

// UpdateBatchQueueCapacity sets the batch queue capacity gauge.
func UpdateBatchQueueCapacity(n int) { globalManager.batchQueueCapacity.Set(float64(n)) }

// UpdateWorkerCount sets the worker gauge.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// RecordHTTPRequest counts one HTTP request and its duration.
func RecordHTTPRequest(endpoint, status string, ms float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, status).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint).Observe(ms)
}
