package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the prometheus collectors exported by the service.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	dashboardLoads  *prometheus.CounterVec
	snapshotWrites  *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "empsync",
			Name:      "http_requests_total",
			Help:      "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "empsync",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "empsync",
			Name:      "http_errors_total",
			Help:      "Errors returned to clients by code.",
		}, []string{"path", "method", "code"}),
		dashboardLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "empsync",
			Name:      "dashboard_loads_total",
			Help:      "Dashboard loads by data source and fallback reason.",
		}, []string{"source", "reason"}),
		snapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "empsync",
			Name:      "snapshot_writes_total",
			Help:      "Fallback snapshot writes by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.dashboardLoads,
		m.snapshotWrites,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordDashboardLoad counts a completed dashboard load. reason is empty for live loads.
func (m *Metrics) RecordDashboardLoad(source, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.dashboardLoads.WithLabelValues(source, reason).Inc()
}

// RecordSnapshotWrite counts snapshot refreshes.
func (m *Metrics) RecordSnapshotWrite(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.snapshotWrites.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
