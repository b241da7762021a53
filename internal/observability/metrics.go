package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	requestsTotal     *prometheus.CounterVec
	latencySeconds    *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	auditEventsTotal  *prometheus.CounterVec
	auditWriteFailure prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examvault_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "examvault_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examvault_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		auditEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examvault_audit_events_total",
			Help: "Total number of audit events persisted, by action and resource.",
		}, []string{"action", "resource"})

		auditWriteFailure = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "examvault_audit_write_failures_total",
			Help: "Total number of audit events that could not be persisted.",
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, auditEventsTotal, auditWriteFailure)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// AuditEvents exposes the counter for persisted audit events.
func AuditEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return auditEventsTotal
}

// AuditWriteFailures exposes the counter for failed audit writes.
func AuditWriteFailures() prometheus.Counter {
	RegisterMetrics()
	return auditWriteFailure
}
