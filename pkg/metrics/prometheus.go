// Package metrics provides Prometheus metrics for the review quiz service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Cache refresh cycle
	refreshCycles    prometheus.Counter
	refreshDiscarded prometheus.Counter
	refreshDuration  prometheus.Histogram

	// Title resolution
	titlesResolved prometheus.Counter
	titlesSkipped  *prometheus.CounterVec

	// Review curation
	reviewsAdmitted prometheus.Counter
	reviewsRejected *prometheus.CounterVec

	// Snapshot state
	snapshotSize    prometheus.Gauge
	snapshotAge     prometheus.Gauge
	coldCacheReads  prometheus.Counter
	roundsServed    prometheus.Counter

	// Score ledger
	ledgerSize      prometheus.Gauge
	ledgerEvictions prometheus.Counter
}

// Global manager on a custom registry so default Go collectors stay out of
// the scrape output.
var globalManager *Manager                     //nolint:gochecknoglobals // singleton metrics manager
var customRegistry = prometheus.NewRegistry()  //nolint:gochecknoglobals // singleton metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "revquiz",
		subsystem:        "quiz",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.refreshCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total completed cache refresh cycles",
	})

	m.refreshDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_discarded_total",
		Help:      "Refresh cycles discarded because they produced no entries",
	})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_seconds",
		Help:      "Histogram of full-catalog refresh duration in seconds",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	m.titlesResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "titles_resolved_total",
		Help:      "Titles successfully resolved into quiz entries",
	})

	m.titlesSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "titles_skipped_total",
		Help:      "Titles skipped during resolution by reason",
	}, []string{"reason"})

	m.reviewsAdmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reviews_admitted_total",
		Help:      "Raw reviews admitted by the classifier",
	})

	m.reviewsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reviews_rejected_total",
		Help:      "Raw reviews rejected by the classifier by reason",
	}, []string{"reason"})

	m.snapshotSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_entries",
		Help:      "Number of quiz entries in the current snapshot",
	})

	m.snapshotAge = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_age_seconds",
		Help:      "Age of the current snapshot in seconds",
	})

	m.coldCacheReads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cold_cache_reads_total",
		Help:      "Quiz requests rejected because no snapshot was ready",
	})

	m.roundsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_served_total",
		Help:      "Quiz rounds served from the warm snapshot",
	})

	m.ledgerSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_records",
		Help:      "Number of score records currently in the ledger",
	})

	m.ledgerEvictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_evictions_total",
		Help:      "Score records evicted past the retention window",
	})
}

// GetRegistry returns the gatherer backing the global manager for promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func RecordRefreshCycle(seconds float64) {
	globalManager.refreshCycles.Inc()
	globalManager.refreshDuration.Observe(seconds)
}

func RecordRefreshDiscarded() {
	globalManager.refreshDiscarded.Inc()
}

func RecordTitleResolved() {
	globalManager.titlesResolved.Inc()
}

func RecordTitleSkipped(reason string) {
	globalManager.titlesSkipped.WithLabelValues(reason).Inc()
}

func RecordReviewAdmitted() {
	globalManager.reviewsAdmitted.Inc()
}

func RecordReviewRejected(reason string) {
	globalManager.reviewsRejected.WithLabelValues(reason).Inc()
}

func UpdateSnapshotSize(n int) {
	globalManager.snapshotSize.Set(float64(n))
}

func UpdateSnapshotAge(seconds float64) {
	globalManager.snapshotAge.Set(seconds)
}

func RecordColdCacheRead() {
	globalManager.coldCacheReads.Inc()
}

func RecordRoundServed() {
	globalManager.roundsServed.Inc()
}

func UpdateLedgerSize(n int) {
	globalManager.ledgerSize.Set(float64(n))
}

func RecordLedgerEviction() {
	globalManager.ledgerEvictions.Inc()
}
