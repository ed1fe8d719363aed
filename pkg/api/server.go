package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/backoffice/pkg/httputil"
	"github.com/platinummonkey/backoffice/pkg/middleware"
	"github.com/platinummonkey/backoffice/pkg/observability"
	"github.com/platinummonkey/backoffice/pkg/proxy"
	"github.com/platinummonkey/backoffice/pkg/session"
)

// DefaultMaxBodyBytes caps inbound request bodies
const DefaultMaxBodyBytes = 1 << 20

// Dependencies wires a Server
type Dependencies struct {
	// UpstreamURL is the backend API base; empty surfaces as 500 on /api calls
	UpstreamURL string
	// Client performs upstream calls; nil uses an instrumented default
	Client  *http.Client
	Store   session.Store
	Logger  *observability.Logger
	Metrics *observability.Metrics

	// StaticDir holds the exported console pages
	StaticDir string
	// LandingPath is where signed-in visitors to /login are sent
	LandingPath  string
	MaxBodyBytes int64
}

// Server is the console's HTTP front: the /api proxy plus guarded pages
type Server struct {
	router  *mux.Router
	handler http.Handler
	proxy   *proxy.Proxy
	gateway *middleware.Gateway
	pages   http.Handler
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewServer creates a new console server
func NewServer(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	store := deps.Store
	if store == nil {
		store = session.NewCookieStore(false)
	}
	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	s := &Server{
		router: mux.NewRouter(),
		proxy: proxy.New(proxy.Config{
			UpstreamURL: deps.UpstreamURL,
			Client:      deps.Client,
			Store:       store,
			Logger:      logger,
			Metrics:     deps.Metrics,
		}),
		gateway: middleware.NewGateway(store, deps.LandingPath, logger, deps.Metrics),
		pages:   NewPageHandler(deps.StaticDir),
		logger:  logger,
		metrics: deps.Metrics,
	}

	s.setupRoutes()

	s.handler = httputil.Chain(
		httputil.RecoveryMiddleware(logger),
		httputil.RequestIDMiddleware(logger),
		httputil.LoggingMiddleware(),
		httputil.MaxBytesMiddleware(maxBody),
	)(s.router)

	return s
}

// setupRoutes configures the proxy routes and the guarded page fallback
func (s *Server) setupRoutes() {
	s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))

	s.proxy.RegisterRoutes(s.router)

	// Everything outside /api is a page. The /api check sits on the outer
	// route so a method mismatch on a proxy route survives to the 405 handler.
	pages := s.router.MatcherFunc(isPageRequest).Subrouter()
	pages.PathPrefix("/").
		Methods(http.MethodGet, http.MethodHead).
		Handler(s.gateway.Handler(s.pages))

	s.router.NotFoundHandler = observability.HTTPMetricsMiddleware(s.metrics)(http.HandlerFunc(notFound))
	s.router.MethodNotAllowedHandler = observability.HTTPMetricsMiddleware(s.metrics)(http.HandlerFunc(methodNotAllowed))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func isPageRequest(r *http.Request, _ *mux.RouteMatch) bool {
	return r.URL.Path != "/api" && !strings.HasPrefix(r.URL.Path, "/api/")
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteNotFound(w)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
