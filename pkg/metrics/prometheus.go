// Package metrics provides Prometheus metrics for the fpvforge catalog service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Score dimensions accepted by RecordBuildScore.
const (
	DimensionCostPerformance = "cost_performance"
	DimensionFunctionality   = "functionality"
	DimensionScalability     = "scalability"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Engine metrics
	buildEvaluations     prometheus.Counter
	buildWarnings        *prometheus.CounterVec
	buildScores          *prometheus.HistogramVec
	buildSlotsFilled     prometheus.Histogram
	recommendationChecks *prometheus.CounterVec
	presetFilters        *prometheus.CounterVec

	// Catalog metrics
	catalogComponents     prometheus.Gauge
	catalogCacheHits      prometheus.Counter
	catalogCacheMisses    prometheus.Counter
	catalogRefreshErrors  prometheus.Counter
	catalogRefreshLatency prometheus.Histogram
	buildsSaved           prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fpvforge",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		scoreBuckets:     prometheus.LinearBuckets(0, 10, 11),
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.buildEvaluations = auto.NewCounter(m.counter(
		"build_evaluations_total",
		"Total number of build selections evaluated",
	))
	m.buildWarnings = auto.NewCounterVec(m.counter(
		"build_warnings_total",
		"Compatibility warnings emitted, by rule",
	), []string{"rule"})
	m.buildScores = auto.NewHistogramVec(m.histogram(
		"build_score",
		"Distribution of build scores by dimension",
		m.scoreBuckets,
	), []string{"dimension"})
	m.buildSlotsFilled = auto.NewHistogram(m.histogram(
		"build_slots_filled",
		"Number of filled slots per evaluated build",
		prometheus.LinearBuckets(0, 1, 13),
	))
	m.recommendationChecks = auto.NewCounterVec(m.counter(
		"recommendation_checks_total",
		"Candidates checked against a frame, by slot and outcome",
	), []string{"slot", "recommended"})
	m.presetFilters = auto.NewCounterVec(m.counter(
		"preset_filters_total",
		"Catalog filter runs by preset",
	), []string{"preset"})

	m.catalogComponents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "components",
		Help:        "Number of components in the last catalog snapshot",
		ConstLabels: m.constLabels,
	})
	m.catalogCacheHits = auto.NewCounter(m.counter(
		"cache_hits_total",
		"Catalog snapshot reads served from cache",
	))
	m.catalogCacheMisses = auto.NewCounter(m.counter(
		"cache_misses_total",
		"Catalog snapshot reads that triggered a reload",
	))
	m.catalogRefreshErrors = auto.NewCounter(m.counter(
		"cache_refresh_errors_total",
		"Catalog reloads that failed",
	))
	m.catalogRefreshLatency = auto.NewHistogram(m.histogram(
		"cache_refresh_duration_milliseconds",
		"Catalog reload latency in milliseconds",
		m.histogramBuckets,
	))
	m.buildsSaved = auto.NewCounter(m.counter(
		"builds_saved_total",
		"Saved builds created",
	))

	m.httpRequests = auto.NewCounterVec(m.counter(
		"http_requests_total",
		"Total number of HTTP requests by endpoint and method",
	), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram(
		"http_request_duration_milliseconds",
		"HTTP request duration in milliseconds",
		m.histogramBuckets,
	), []string{"endpoint", "method", "status_code"})
	m.httpRateLimited = auto.NewCounterVec(m.counter(
		"http_rate_limited_total",
		"Requests rejected by the rate limiter",
	), []string{"endpoint"})

	m.errorRateByComponent = auto.NewCounterVec(m.counter(
		"errors_by_component_total",
		"Errors by component and type",
	), []string{"component", "error_type"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counter(
		"errors_by_endpoint_total",
		"Errors by endpoint, method and type",
	), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// Engine Metrics Functions.

// RecordBuildEvaluation counts one evaluated build with its filled slots.
func RecordBuildEvaluation(slotsFilled int) {
	globalManager.buildEvaluations.Inc()
	globalManager.buildSlotsFilled.Observe(float64(slotsFilled))
}

// RecordBuildWarning counts one compatibility warning for rule.
func RecordBuildWarning(rule string) {
	globalManager.buildWarnings.WithLabelValues(rule).Inc()
}

// RecordBuildScore observes a score for one of the Dimension* names.
func RecordBuildScore(dimension string, score int) error {
	switch dimension {
	case DimensionCostPerformance, DimensionFunctionality, DimensionScalability:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDimension, dimension)
	}
	globalManager.buildScores.WithLabelValues(dimension).Observe(float64(score))
	return nil
}

// RecordRecommendation counts one matcher decision.
func RecordRecommendation(slot string, recommended bool) {
	outcome := "false"
	if recommended {
		outcome = "true"
	}
	globalManager.recommendationChecks.WithLabelValues(slot, outcome).Inc()
}

// RecordPresetFilter counts one catalog filter run.
func RecordPresetFilter(preset string) {
	globalManager.presetFilters.WithLabelValues(preset).Inc()
}

// Catalog Metrics Functions.

// UpdateCatalogSize sets the number of components in the catalog.
func UpdateCatalogSize(count int) {
	globalManager.catalogComponents.Set(float64(count))
}

// RecordCacheHit increments the catalog cache hit counter.
func RecordCacheHit() {
	globalManager.catalogCacheHits.Inc()
}

// RecordCacheMiss increments the catalog cache miss counter.
func RecordCacheMiss() {
	globalManager.catalogCacheMisses.Inc()
}

// RecordCacheRefreshError increments the failed reload counter.
func RecordCacheRefreshError() {
	globalManager.catalogRefreshErrors.Inc()
}

// RecordCacheRefreshLatency records catalog reload latency.
func RecordCacheRefreshLatency(latencyMs float64) {
	globalManager.catalogRefreshLatency.Observe(latencyMs)
}

// RecordBuildSaved increments the saved builds counter.
func RecordBuildSaved() {
	globalManager.buildsSaved.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
