package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultHTTPDurationBuckets cover the expected request latencies, from
// cached reads to full distribution recomputes.
var DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// AppMetrics holds every application metric vector.
type AppMetrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  *prometheus.GaugeVec

	NormalizationMentionsTotal *prometheus.CounterVec
	BackfillRowsTotal          *prometheus.CounterVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewAppMetrics registers the application metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal: collector.RegisterCounter(
			"http_requests_total", "Total HTTP requests", "method", "path", "status"),
		HTTPRequestDuration: collector.RegisterHistogram(
			"http_request_duration_seconds", "HTTP request duration",
			DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests: collector.RegisterGauge(
			"http_active_requests", "In-flight HTTP requests", "method"),

		NormalizationMentionsTotal: collector.RegisterCounter(
			"normalization_mentions_total",
			"Reaction mentions processed, by outcome", "outcome"),
		BackfillRowsTotal: collector.RegisterCounter(
			"backfill_rows_total", "Backfill rows processed, by result", "result"),

		CacheHitsTotal: collector.RegisterCounter(
			"cache_hits_total", "Cache hits", "key"),
		CacheMissesTotal: collector.RegisterCounter(
			"cache_misses_total", "Cache misses", "key"),
	}
}

// ObserveMentionOutcome implements the cleaning pipeline's metrics hook.
func (m *AppMetrics) ObserveMentionOutcome(outcome string) {
	m.NormalizationMentionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest records one completed request.
func (m *AppMetrics) ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
