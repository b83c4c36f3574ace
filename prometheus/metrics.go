package prometheus

import (
	"time"

	"quicksupply/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Directory reconciler metrics
	DirectoryOperationsCounter prometheus.CounterVec
	OfflineModeGauge           prometheus.Gauge
	DirectorySizeGauge         prometheus.Gauge
	OptimisticFallbackCounter  prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// AI collaborator metrics
	AIRequestsCounter   prometheus.CounterVec
	AIFallbackCounter   prometheus.CounterVec
	MatchCacheHits      prometheus.Counter
	MatchCacheMisses    prometheus.Counter

	// View navigation metrics
	ViewTransitionsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	DirectoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_directory_operations_total",
			Help: "Total number of directory reconciler operations",
		},
		[]string{"operation"},
	)

	OfflineModeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_offline_mode",
			Help: "1 when the directory is serving local fallback data only",
		},
	)

	DirectorySizeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_directory_suppliers",
			Help: "Number of supplier records in the merged directory",
		},
	)

	OptimisticFallbackCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_optimistic_local_writes_total",
			Help: "Writes applied to local state after a skipped or failed remote write",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	AIRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_ai_requests_total",
			Help: "Total number of AI collaborator calls",
		},
		[]string{"operation"},
	)

	AIFallbackCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_ai_fallbacks_total",
			Help: "AI calls that degraded to a templated fallback value",
		},
		[]string{"operation"},
	)

	MatchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_match_cache_hits_total",
			Help: "AI match results served from the cache",
		},
	)

	MatchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_match_cache_misses_total",
			Help: "AI match requests not found in the cache",
		},
	)

	ViewTransitionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_view_transitions_total",
			Help: "Total number of view navigation transitions",
		},
		[]string{"trigger", "view"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordDirectoryOperation increments the counter for reconciler operations
func RecordDirectoryOperation(operation string) {
	DirectoryOperationsCounter.WithLabelValues(operation).Inc()
}

// SetOfflineMode flips the offline-mode gauge
func SetOfflineMode(offline bool) {
	if offline {
		OfflineModeGauge.Set(1)
	} else {
		OfflineModeGauge.Set(0)
	}
}

// RecordAIRequest increments the AI call counter for an operation
func RecordAIRequest(operation string) {
	AIRequestsCounter.WithLabelValues(operation).Inc()
}

// RecordAIFallback increments the fallback counter for an operation
func RecordAIFallback(operation string) {
	AIFallbackCounter.WithLabelValues(operation).Inc()
}

// RecordViewTransition increments the transition counter
func RecordViewTransition(trigger, view string) {
	ViewTransitionsCounter.WithLabelValues(trigger, view).Inc()
}
