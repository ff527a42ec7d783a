// Package metrics provides Prometheus metrics for the pitchside roster service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the roster service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Pipeline Metrics - one observation per Load -> Filter -> Assign -> Aggregate run
	pipelineRuns       *prometheus.CounterVec
	pipelineDuration   prometheus.Histogram
	rosterSize         prometheus.Gauge
	filteredSize       prometheus.Gauge
	unmappedPositions  *prometheus.CounterVec
	duplicatePlayerIDs prometheus.Counter
	sourceLoadErrors   *prometheus.CounterVec
	exportsWritten     prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager atomic.Pointer[Manager] //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager.Store(NewManager(WithPrometheusRegistry(customRegistry)))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchside",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Use replaces the global manager. Tests use it to observe metrics on an
// isolated registry.
func Use(m *Manager) error {
	if m == nil {
		return ErrNilManager
	}
	globalManager.Store(m)
	return nil
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pipelineRuns = m.counterVec("pipeline_runs_total",
		"Total number of roster pipeline runs by outcome", "outcome")

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pipeline_duration_milliseconds",
		Help:        "Histogram of full pipeline run time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.rosterSize = m.gauge("roster_players",
		"Number of players in the combined roster on the last run")

	m.filteredSize = m.gauge("filtered_players",
		"Number of players left after filtering on the last run")

	m.unmappedPositions = m.counterVec("unmapped_positions_total",
		"Players whose primary position matched no pitch bucket", "position")

	m.duplicatePlayerIDs = m.counter("duplicate_player_ids_total",
		"Player ids seen more than once while loading the roster")

	m.sourceLoadErrors = m.counterVec("source_load_errors_total",
		"Failures reading a tabular roster source", "source")

	m.exportsWritten = m.counter("exports_written_total",
		"Number of roster workbooks exported")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Errors by endpoint, method and error type", "endpoint", "method", "error_type")

	m.errorRateByType = m.counterVec("errors_by_type_total",
		"Errors by type and severity", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes",
		"System memory usage in bytes")

	m.systemGoroutineCount = m.gauge("system_goroutine_count",
		"Number of goroutines")

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

func current() *Manager { return globalManager.Load() }

// Current returns the active global manager.
func Current() *Manager { return current() }

// Pipeline Metrics Functions.

// RecordPipelineRun counts a pipeline run with its outcome ("ok" or an error kind).
func RecordPipelineRun(outcome string) {
	current().pipelineRuns.WithLabelValues(outcome).Inc()
}

// RecordPipelineDuration records pipeline run time in milliseconds.
func RecordPipelineDuration(durationMs float64) {
	current().pipelineDuration.Observe(durationMs)
}

// UpdateRosterSize sets the combined roster size.
func UpdateRosterSize(count int) {
	current().rosterSize.Set(float64(count))
}

// UpdateFilteredSize sets the filtered set size.
func UpdateFilteredSize(count int) {
	current().filteredSize.Set(float64(count))
}

// RecordUnmappedPosition counts a player placed on the sentinel coordinate.
func RecordUnmappedPosition(position string) {
	current().unmappedPositions.WithLabelValues(position).Inc()
}

// RecordDuplicatePlayerID counts a repeated player id in the loaded roster.
func RecordDuplicatePlayerID() {
	current().duplicatePlayerIDs.Inc()
}

// RecordSourceLoadError counts a failed read of the named source.
func RecordSourceLoadError(source string) {
	current().sourceLoadErrors.WithLabelValues(source).Inc()
}

// RecordExport counts a workbook export.
func RecordExport() {
	current().exportsWritten.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	current().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Gatherer returns the gatherer behind the active manager.
func Gatherer() (prometheus.Gatherer, error) {
	g, ok := current().registry.(prometheus.Gatherer)
	if !ok {
		return nil, ErrNoGatherer
	}
	return g, nil
}
