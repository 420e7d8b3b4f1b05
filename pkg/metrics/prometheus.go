// Package metrics provides Prometheus metrics for the matchd matching service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the matchd service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a matching engine
	matchRuns          prometheus.Counter
	matchRunErrors     prometheus.Counter
	matchRunDuration   prometheus.Histogram
	candidatesScored   prometheus.Counter
	candidatesDropped  prometheus.Counter
	matchesPersisted   prometheus.Counter
	scoringLatency     prometheus.Histogram

	// Embedding Provider Metrics - Optional capability health
	embeddingRequests  prometheus.Counter
	embeddingFallbacks prometheus.Counter

	// Store Metrics - Persistence performance
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Operational Health Metrics
	talentPoolSize prometheus.Gauge
	workerCount    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchd",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - Focus on what drives business value
	m.matchRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_runs_total",
		Help:      "Total number of completed match runs",
	})

	m.matchRunErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_run_errors_total",
		Help:      "Total number of failed match runs",
	})

	m.matchRunDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_run_duration_milliseconds",
		Help:      "Histogram of end-to-end match run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.candidatesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_scored_total",
		Help:      "Total number of gig/talent pairs scored",
	})

	m.candidatesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_dropped_total",
		Help:      "Total number of candidates below the minimum viability threshold",
	})

	m.matchesPersisted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_persisted_total",
		Help:      "Total number of match rows written by replace-set persistence",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of per-candidate scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Embedding Provider Metrics - Optional capability health
	m.embeddingRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "embedding_requests_total",
		Help:      "Total number of embedding provider calls",
	})

	m.embeddingFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "embedding_fallbacks_total",
		Help:      "Total number of semantic scores served by the local token-overlap fallback",
	})

	// Store Metrics - Persistence performance
	m.storeLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_latency_milliseconds",
			Help:      "Match store operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)

	m.storeErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_errors_total",
			Help:      "Total number of match store errors by operation",
		},
		[]string{"operation"},
	)

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Operational Health Metrics - System stability indicators
	m.talentPoolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "talent_pool_size",
		Help:      "Number of eligible talents considered in the most recent match run",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Configured number of concurrent scoring workers",
	})
}

// RecordMatchRun increments the completed match run counter.
func RecordMatchRun() {
	globalManager.matchRuns.Inc()
}

// RecordMatchRunError increments the failed match run counter.
func RecordMatchRunError() {
	globalManager.matchRunErrors.Inc()
}

// RecordMatchRunDuration records end-to-end match run duration in milliseconds.
func RecordMatchRunDuration(durationMs float64) {
	globalManager.matchRunDuration.Observe(durationMs)
}

// RecordCandidatesScored adds to the scored pair counter.
func RecordCandidatesScored(n int) {
	globalManager.candidatesScored.Add(float64(n))
}

// RecordCandidatesDropped adds to the below-threshold counter.
func RecordCandidatesDropped(n int) {
	globalManager.candidatesDropped.Add(float64(n))
}

// RecordMatchesPersisted adds to the persisted match row counter.
func RecordMatchesPersisted(n int) {
	globalManager.matchesPersisted.Add(float64(n))
}

// RecordScoringLatency records per-candidate scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordEmbeddingRequest increments the embedding provider call counter.
func RecordEmbeddingRequest() {
	globalManager.embeddingRequests.Inc()
}

// RecordEmbeddingFallback increments the semantic fallback counter.
func RecordEmbeddingFallback() {
	globalManager.embeddingFallbacks.Inc()
}

// RecordStoreLatency records a store operation latency with its operation label.
func RecordStoreLatency(operation string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordStoreError increments the store error counter for an operation.
func RecordStoreError(operation string) {
	globalManager.storeErrors.WithLabelValues(operation).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateTalentPoolSize sets the eligible talent pool gauge.
func UpdateTalentPoolSize(size int) {
	globalManager.talentPoolSize.Set(float64(size))
}

// UpdateWorkerCount sets the configured scoring worker gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
