package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/platinummonkey/backoffice/pkg/auth"
	"github.com/platinummonkey/backoffice/pkg/observability"
	"github.com/platinummonkey/backoffice/pkg/session"
)

const (
	// LoginPath is the only public page
	LoginPath = "/login"
	// DefaultLandingPath is where an authenticated visit to /login lands
	DefaultLandingPath = "/ventas"
	// NextParam carries the originally requested page through the login form
	NextParam = "next"
)

// excludedPrefixes are never guarded: API routes and static assets
var excludedPrefixes = []string{
	"/_next",
	"/api",
	"/favicon",
	"/images",
	"/fonts",
	"/assets",
	"/static",
}

// Gateway guards page navigation. Unauthenticated visits to protected pages
// are redirected to the login page, and authenticated visits to the login
// page are sent on to the application.
type Gateway struct {
	store   session.Store
	landing string
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewGateway creates a gateway. An empty landing uses DefaultLandingPath.
func NewGateway(store session.Store, landing string, logger *observability.Logger, metrics *observability.Metrics) *Gateway {
	if landing == "" {
		landing = DefaultLandingPath
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Gateway{
		store:   store,
		landing: landing,
		logger:  logger,
		metrics: metrics,
	}
}

// Handler wraps next with the route guard
func (g *Gateway) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path

		if IsExcluded(p) {
			g.metrics.GatewayDecision(observability.DecisionExcluded)
			next.ServeHTTP(w, r)
			return
		}

		token, present := g.store.Token(r)
		payload, valid := auth.Valid(token)
		if valid {
			if _, hasExp := payload.ExpiresAt(); !hasExp {
				g.requestLogger(r).Debug("session credential has no expiry")
			}
		}

		if IsPublic(p) {
			if valid {
				target := SafeNext(r.URL.Query().Get(NextParam), g.landing)
				g.metrics.GatewayDecision(observability.DecisionAuthenticated)
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
				return
			}
			g.metrics.GatewayDecision(observability.DecisionAllow)
			next.ServeHTTP(w, r)
			return
		}

		if !valid {
			decision := observability.DecisionLogin
			if present {
				// a stale cookie would otherwise bounce between here and /login
				g.store.Clear(w)
				decision = observability.DecisionLoginCleared
			}
			g.metrics.GatewayDecision(decision)
			http.Redirect(w, r, LoginRedirect(r.URL), http.StatusTemporaryRedirect)
			return
		}

		g.metrics.GatewayDecision(observability.DecisionAllow)
		ctx := observability.WithUserID(r.Context(), payload.SubjectString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gateway) requestLogger(r *http.Request) *observability.Logger {
	return observability.FromContextOr(r.Context(), g.logger).WithField("path", r.URL.Path)
}

// IsExcluded reports whether p bypasses the guard: API routes, asset
// prefixes, and any path whose last segment has a file extension
func IsExcluded(p string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return path.Ext(path.Base(p)) != ""
}

// IsPublic reports whether p is the login page or below it
func IsPublic(p string) bool {
	return p == LoginPath || strings.HasPrefix(p, LoginPath+"/")
}

// LoginRedirect builds /login?next=<path+query> for the requested URL
func LoginRedirect(requested *url.URL) string {
	next := requested.EscapedPath()
	if requested.RawQuery != "" {
		next += "?" + requested.RawQuery
	}
	return LoginPath + "?" + url.Values{NextParam: {next}}.Encode()
}

// SafeNext returns next when it is a local absolute path and fallback
// otherwise. Protocol-relative values ("//host", "/\host") are rejected.
func SafeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") {
		return fallback
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
