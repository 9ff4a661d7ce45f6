package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fibmetrics "github.com/agbru/fibdrv/internal/metrics"
)

// Metrics holds the HTTP collectors of a server together with the registry
// they live in. Each Metrics owns its registry, so servers built in the same
// process (tests in particular) never collide on registration.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
	handler        http.Handler
}

// NewMetrics creates a registry with the Go runtime and process collectors
// and the request collectors registered on it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: fibmetrics.Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: fibmetrics.Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}

// Registry returns the registry backing m. Device metrics are registered
// here so that /metrics reports them alongside the request metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest counts a finished request.
func (m *Metrics) ObserveRequest(route string, code int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// WritePrometheus writes every registered metric in the Prometheus text
// exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks active requests and counts each response by route
// pattern and status code.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		s.metrics.ObserveRequest(routePattern(r), code)
	}
}
