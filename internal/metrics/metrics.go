package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the traffic engine. All Record
// methods are safe to call on a nil receiver so callers can run without
// metrics wired.
type Metrics struct {
	// Report generation
	ReportsGenerated *prometheus.CounterVec
	ReportLatency    *prometheus.HistogramVec

	// Observed ground-truth data
	ObservedFetches *prometheus.CounterVec
	ObservedIngests *prometheus.CounterVec

	// Caching / archival
	CacheLookups  *prometheus.CounterVec
	ArchiveWrites *prometheus.CounterVec

	// System
	ActiveAssets  prometheus.Gauge
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Total traffic reports generated",
			},
			[]string{"kind", "profile"},
		),
		ReportLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_latency_seconds",
				Help:      "Report generation latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"kind"},
		),
		ObservedFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "observed_fetches_total",
				Help:      "Observed-data lookups by outcome",
			},
			[]string{"result"}, // hit, miss, error
		),
		ObservedIngests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "observed_ingests_total",
				Help:      "Observed-data ingest requests by outcome",
			},
			[]string{"status"},
		),
		CacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_lookups_total",
				Help:      "Report cache lookups by outcome",
			},
			[]string{"result"}, // hit, miss
		),
		ArchiveWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "archive_writes_total",
				Help:      "Report archive writes by outcome",
			},
			[]string{"status"},
		),
		ActiveAssets: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_assets",
				Help:      "Number of active billboard assets",
			},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Rate limit rejections",
			},
			[]string{"endpoint"},
		),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordReport records a finished report generation.
func (m *Metrics) RecordReport(kind, profile string, latency time.Duration) {
	if m == nil {
		return
	}
	m.ReportsGenerated.WithLabelValues(kind, profile).Inc()
	m.ReportLatency.WithLabelValues(kind).Observe(latency.Seconds())
}

// RecordObservedFetch records an observed-data lookup outcome.
func (m *Metrics) RecordObservedFetch(result string) {
	if m == nil {
		return
	}
	m.ObservedFetches.WithLabelValues(result).Inc()
}

// RecordObservedIngest records an observed-data ingest outcome.
func (m *Metrics) RecordObservedIngest(status string) {
	if m == nil {
		return
	}
	m.ObservedIngests.WithLabelValues(status).Inc()
}

// RecordCacheLookup records a report cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordArchiveWrite records a report archive write outcome.
func (m *Metrics) RecordArchiveWrite(status string) {
	if m == nil {
		return
	}
	m.ArchiveWrites.WithLabelValues(status).Inc()
}

// UpdateActiveAssets updates the active asset gauge.
func (m *Metrics) UpdateActiveAssets(n int) {
	if m == nil {
		return
	}
	m.ActiveAssets.Set(float64(n))
}

// RecordRateLimitHit records a rate limit rejection.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}
