// Package metrics exposes the Prometheus collectors of the frontend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	backendRequests     *prometheus.CounterVec
	backendDuration     *prometheus.HistogramVec
	staleResults        prometheus.Counter
	limitsFallbacks     prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Metrics{
		registry: reg,

		httpRequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests.",
			}, []string{"path", "method", "code"},
		),
		httpRequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			}, []string{"path", "method"},
		),
		backendRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgen_backend_requests_total",
				Help: "Requests sent to the password backend by endpoint and outcome.",
			}, []string{"endpoint", "outcome"},
		),
		backendDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "passgen_backend_request_duration_seconds",
				Help:    "Duration of requests sent to the password backend.",
				Buckets: prometheus.DefBuckets,
			}, []string{"endpoint"},
		),
		staleResults: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "passgen_stale_results_total",
				Help: "Password results dropped because a newer request was issued.",
			},
		),
		limitsFallbacks: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "passgen_limits_fallbacks_total",
				Help: "Times the config endpoint failed and default limits were used.",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(path, method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(path, method, strconv.Itoa(code)).Inc()
	m.httpRequestDuration.WithLabelValues(path, method).Observe(d.Seconds())
}

func (m *Metrics) ObserveBackend(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) StaleResult() {
	if m == nil {
		return
	}
	m.staleResults.Inc()
}

func (m *Metrics) LimitsFallback() {
	if m == nil {
		return
	}
	m.limitsFallbacks.Inc()
}
