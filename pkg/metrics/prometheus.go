// Package metrics provides Prometheus metrics for the assessment service.
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

// Manager manages all Prometheus metrics for the assessment service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Submission metrics
	submissionsAccepted    *prometheus.CounterVec
	submissionsDuplicate   prometheus.Counter
	submissionsInvalid     prometheus.Counter
	submissionsCapRejected prometheus.Counter

	// Report metrics
	reportsGenerated prometheus.Counter
	reportLatency    prometheus.Histogram

	// Store metrics
	recordsStored prometheus.Gauge
	rateeCount    prometheus.Gauge

	// Notification metrics
	notificationsSent    prometheus.Counter
	notificationsFailed  prometheus.Counter
	notificationsDropped prometheus.Counter
	notifyQueueSize      prometheus.Gauge
	notifyQueueCapacity  prometheus.Gauge
	notifyWorkerCount    prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "fullcircle",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
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
	// Register on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.submissionsAccepted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "submissions_accepted_total",
			Help:      "Total number of rating submissions accepted, by rater role",
		},
		[]string{"role"},
	)

	m.submissionsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_duplicate_total",
		Help:      "Total number of rating submissions rejected as duplicates",
	})

	m.submissionsInvalid = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_invalid_total",
		Help:      "Total number of rating submissions rejected by validation",
	})

	m.submissionsCapRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_cap_rejected_total",
		Help:      "Total number of rating submissions rejected by the rater cap",
	})

	m.reportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_generated_total",
		Help:      "Total number of aggregate reports computed",
	})

	m.reportLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_latency_milliseconds",
		Help:      "Histogram of report aggregation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recordsStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_stored",
		Help:      "Current number of rating records in the store",
	})

	m.rateeCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ratee_count",
		Help:      "Current number of ratees with a self assessment on record",
	})

	m.notificationsSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_sent_total",
		Help:      "Total number of confirmation notifications delivered",
	})

	m.notificationsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_failed_total",
		Help:      "Total number of confirmation notifications that failed to send",
	})

	m.notificationsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_dropped_total",
		Help:      "Total number of confirmation notifications dropped on a full queue",
	})

	m.notifyQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_queue_size",
		Help:      "Current size of the notification queue",
	})

	m.notifyQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_queue_capacity",
		Help:      "Configured capacity of the notification queue",
	})

	m.notifyWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_worker_count",
		Help:      "Current number of notification dispatch workers",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordSubmissionAccepted increments the accepted-submissions counter for a role.
func RecordSubmissionAccepted(role string) {
	if globalManager.enabled {
		globalManager.submissionsAccepted.WithLabelValues(role).Inc()
	}
}

// RecordSubmissionDuplicate increments the duplicate-submissions counter.
func RecordSubmissionDuplicate() {
	if globalManager.enabled {
		globalManager.submissionsDuplicate.Inc()
	}
}

// RecordSubmissionInvalid increments the invalid-submissions counter.
func RecordSubmissionInvalid() {
	if globalManager.enabled {
		globalManager.submissionsInvalid.Inc()
	}
}

// RecordSubmissionCapRejected increments the cap-rejected counter.
func RecordSubmissionCapRejected() {
	if globalManager.enabled {
		globalManager.submissionsCapRejected.Inc()
	}
}

// RecordReportGenerated increments the generated-reports counter.
func RecordReportGenerated() {
	if globalManager.enabled {
		globalManager.reportsGenerated.Inc()
	}
}

// RecordReportLatency observes one report aggregation duration in milliseconds.
func RecordReportLatency(ms float64) {
	if globalManager.enabled {
		globalManager.reportLatency.Observe(ms)
	}
}

// UpdateRecordsStored sets the current number of stored rating records.
func UpdateRecordsStored(n int) {
	if globalManager.enabled {
		globalManager.recordsStored.Set(float64(n))
	}
}

// UpdateRateeCount sets the current number of known ratees.
func UpdateRateeCount(n int) {
	if globalManager.enabled {
		globalManager.rateeCount.Set(float64(n))
	}
}

// RecordNotificationSent increments the sent-notifications counter.
func RecordNotificationSent() {
	if globalManager.enabled {
		globalManager.notificationsSent.Inc()
	}
}

// RecordNotificationFailed increments the failed-notifications counter.
func RecordNotificationFailed() {
	if globalManager.enabled {
		globalManager.notificationsFailed.Inc()
	}
}

// RecordNotificationDropped increments the dropped-notifications counter.
func RecordNotificationDropped() {
	if globalManager.enabled {
		globalManager.notificationsDropped.Inc()
	}
}

// UpdateNotifyQueueSize sets the current notification queue size.
func UpdateNotifyQueueSize(n int) {
	if globalManager.enabled {
		globalManager.notifyQueueSize.Set(float64(n))
	}
}

// UpdateNotifyQueueCapacity sets the configured notification queue capacity.
func UpdateNotifyQueueCapacity(n int) {
	if globalManager.enabled {
		globalManager.notifyQueueCapacity.Set(float64(n))
	}
}

// UpdateNotifyWorkerCount sets the current number of dispatch workers.
func UpdateNotifyWorkerCount(n int) {
	if globalManager.enabled {
		globalManager.notifyWorkerCount.Set(float64(n))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
	}
}
