// Package monitoring handles Prometheus metrics collection
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	planSetsGeneratedTotal prometheus.Counter
	plansAcceptedTotal     *prometheus.CounterVec
	planGenerationDuration prometheus.Histogram
	planScore              *prometheus.HistogramVec
	catalogSize            prometheus.Gauge

	// Cache metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		planSetsGeneratedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "plan_sets_generated_total",
				Help: "Total number of fueling plan sets generated",
			},
		),
		plansAcceptedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plans_accepted_total",
				Help: "Total number of plans accepted, by strategy",
			},
			[]string{"strategy"},
		),
		planGenerationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "plan_generation_duration_seconds",
				Help:    "Engine run duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		planScore: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plan_score",
				Help:    "Score distribution of generated plans, by strategy",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"strategy"},
		),
		catalogSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_items",
				Help: "Number of items in the stored catalog",
			},
		),

		cacheOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Total cache operations by type and result",
			},
			[]string{"operation", "result"},
		),
	}
}

// RecordHTTPRequest records metrics for one HTTP request
func (m *MetricsCollector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordPlanSetGenerated records one engine run
func (m *MetricsCollector) RecordPlanSetGenerated(duration time.Duration) {
	m.planSetsGeneratedTotal.Inc()
	m.planGenerationDuration.Observe(duration.Seconds())
}

// RecordPlanScore records the score of one generated plan
func (m *MetricsCollector) RecordPlanScore(strategy string, score int) {
	m.planScore.WithLabelValues(strategy).Observe(float64(score))
}

// RecordPlanAccepted records one accepted plan
func (m *MetricsCollector) RecordPlanAccepted(strategy string) {
	m.plansAcceptedTotal.WithLabelValues(strategy).Inc()
}

// SetCatalogSize updates the catalog size gauge
func (m *MetricsCollector) SetCatalogSize(n int) {
	m.catalogSize.Set(float64(n))
}

// RecordCacheOperation records a cache operation outcome
func (m *MetricsCollector) RecordCacheOperation(operation, result string) {
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
