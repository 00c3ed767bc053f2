// Package metrics exposes Prometheus collectors for HTTP traffic and tracker activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recruit_tracker"

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Metrics owns a private registry so tests can build as many instances as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimitHits       *prometheus.CounterVec

	dailyRecordsSaved prometheus.Counter
	forecastsComputed *prometheus.CounterVec
	exportsGenerated  *prometheus.CounterVec
	storeReadFailures *prometheus.CounterVec
}

// New registers every collector on a fresh registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of processed HTTP requests",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of HTTP handlers",
		Buckets:   histogramBuckets,
	}, []string{"method", "route", "status"})

	m.rateLimitHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limit_hits_total",
		Help:      "Number of rate-limited responses",
	}, []string{"route"})

	m.dailyRecordsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_records_saved_total",
		Help:      "Daily activity records upserted",
	})

	m.forecastsComputed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forecasts_total",
		Help:      "Funnel forecasts by outcome",
	}, []string{"outcome"})

	m.exportsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Generated exports by format",
	}, []string{"format"})

	m.storeReadFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_read_failures_total",
		Help:      "Reads that failed during aggregation and were treated as empty",
	}, []string{"source"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpRequestDuration,
		m.rateLimitHits,
		m.dailyRecordsSaved,
		m.forecastsComputed,
		m.exportsGenerated,
		m.storeReadFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// ObserveHTTP records one finished request
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "route": route, "status": strconv.Itoa(status)}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(d.Seconds())
}

// RateLimited counts a throttled request
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimitHits.WithLabelValues(route).Inc()
}

// DailyRecordSaved counts an upserted daily record
func (m *Metrics) DailyRecordSaved() {
	if m == nil {
		return
	}
	m.dailyRecordsSaved.Inc()
}

// ForecastComputed counts a forecast; ok=false for rejected inputs
func (m *Metrics) ForecastComputed(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "invalid"
	}
	m.forecastsComputed.WithLabelValues(outcome).Inc()
}

// ExportGenerated counts a yearly export ("csv", "xlsx", "ics")
func (m *Metrics) ExportGenerated(format string) {
	if m == nil {
		return
	}
	m.exportsGenerated.WithLabelValues(format).Inc()
}

// StoreReadFailed counts a read that degraded to an empty collection
func (m *Metrics) StoreReadFailed(source string) {
	if m == nil {
		return
	}
	m.storeReadFailures.WithLabelValues(source).Inc()
}
