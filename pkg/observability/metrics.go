package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway decisions recorded by GatewayDecision
const (
	DecisionAllow         = "allow"
	DecisionLogin         = "redirect_login"
	DecisionLoginCleared  = "redirect_login_cleared"
	DecisionAuthenticated = "redirect_authenticated"
	DecisionExcluded      = "excluded"
)

// Session events recorded by SessionEvent
const (
	SessionLogin         = "login"
	SessionLoginRejected = "login_rejected"
	SessionLoginError    = "login_error"
	SessionLogout        = "logout"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Upstream metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamFailuresTotal   *prometheus.CounterVec

	// Session metrics
	GatewayDecisionsTotal *prometheus.CounterVec
	SessionEventsTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "route"},
		),

		UpstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_upstream_requests_total",
				Help: "Total number of requests forwarded to the upstream API",
			},
			[]string{"resource", "method", "status"},
		),
		UpstreamRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_upstream_request_duration_seconds",
				Help:    "Upstream API round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource", "method"},
		),
		UpstreamFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_upstream_failures_total",
				Help: "Proxy requests that failed locally before an upstream status was relayed",
			},
			[]string{"resource", "reason"},
		),

		GatewayDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_gateway_decisions_total",
				Help: "Route guard decisions for page requests",
			},
			[]string{"decision"},
		),
		SessionEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_session_events_total",
				Help: "Login and logout outcomes",
			},
			[]string{"event"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.UpstreamFailuresTotal,
		m.GatewayDecisionsTotal,
		m.SessionEventsTotal,
	)

	return m
}

// ObserveUpstream records one upstream round trip
func (m *Metrics) ObserveUpstream(resource, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(resource, method, strconv.Itoa(status)).Inc()
	m.UpstreamRequestDuration.WithLabelValues(resource, method).Observe(d.Seconds())
}

// UpstreamFailure records a proxy request answered with a local 500
func (m *Metrics) UpstreamFailure(resource, reason string) {
	if m == nil {
		return
	}
	m.UpstreamFailuresTotal.WithLabelValues(resource, reason).Inc()
}

// GatewayDecision records a route guard outcome
func (m *Metrics) GatewayDecision(decision string) {
	if m == nil {
		return
	}
	m.GatewayDecisionsTotal.WithLabelValues(decision).Inc()
}

// SessionEvent records a login or logout outcome
func (m *Metrics) SessionEvent(event string) {
	if m == nil {
		return
	}
	m.SessionEventsTotal.WithLabelValues(event).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// routeLabel returns the matched mux route template so page paths don't
// explode label cardinality
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics.
// Register it with router.Use so the matched route is known.
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if metrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := routeLabel(r)
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			metrics.HTTPResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
