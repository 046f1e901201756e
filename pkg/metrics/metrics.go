package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors exposed by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// ExternalRequestsTotal counts calls to external collaborators
	// (caldav, stripe) by operation and outcome.
	ExternalRequestsTotal *prometheus.CounterVec
}

// New registers and returns the service collectors.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ExternalRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "external_requests_total",
			Help:        "Calls to external collaborators by target, operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"target", "operation", "outcome"}),
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveExternal records one collaborator call.
func (m *Metrics) ObserveExternal(target, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ExternalRequestsTotal.WithLabelValues(target, operation, outcome).Inc()
}
