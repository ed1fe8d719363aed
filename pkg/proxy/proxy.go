package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/backoffice/pkg/httputil"
	"github.com/platinummonkey/backoffice/pkg/observability"
	"github.com/platinummonkey/backoffice/pkg/session"
)

const (
	// MissingUpstreamMessage is returned when no upstream URL is configured
	MissingUpstreamMessage = "Missing API_URL"

	defaultPage  = "1"
	defaultLimit = "10"
)

// Config wires a Proxy
type Config struct {
	// UpstreamURL is the base URL of the upstream API. Empty is allowed;
	// every call then fails with 500 "Missing API_URL".
	UpstreamURL string
	// Client performs upstream calls; nil uses an otelhttp-instrumented client
	Client    *http.Client
	Store     session.Store
	Logger    *observability.Logger
	Metrics   *observability.Metrics
	Resources []Resource
}

// Proxy serves the /api endpoints
type Proxy struct {
	upstream  string
	client    *http.Client
	store     session.Store
	logger    *observability.Logger
	metrics   *observability.Metrics
	resources []Resource
}

// New creates a Proxy
func New(cfg Config) *Proxy {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Transport: observability.NewTransport(nil)}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	resources := cfg.Resources
	if resources == nil {
		resources = DefaultResources
	}

	return &Proxy{
		upstream:  strings.TrimSuffix(cfg.UpstreamURL, "/"),
		client:    client,
		store:     cfg.Store,
		logger:    logger,
		metrics:   cfg.Metrics,
		resources: resources,
	}
}

// RegisterRoutes registers the auth and resource endpoints on router
func (p *Proxy) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", p.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", p.Logout).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/me", p.Me).Methods(http.MethodGet)

	for _, res := range p.resources {
		for _, op := range res.operations() {
			path := "/api/" + res.Name
			if op.item {
				path += "/{id}"
			}
			router.Handle(path, p.forward(op)).Methods(op.method)
		}
	}
}

// forward builds the handler for one proxied endpoint
func (p *Proxy) forward(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := observability.FromContextOr(r.Context(), p.logger).WithFields(map[string]interface{}{
			"resource": op.resource.Name,
			"method":   op.method,
		})

		token, ok := p.store.Token(r)
		if !ok {
			httputil.WriteUnauthorized(w)
			return
		}

		if p.upstream == "" {
			logger.Error("upstream URL is not configured")
			p.metrics.UpstreamFailure(op.resource.Name, "config")
			httputil.WriteInternalError(w, MissingUpstreamMessage)
			return
		}

		var body io.Reader
		if op.hasBody() {
			raw, err := httputil.ReadJSONBody(r)
			if err != nil {
				logger.WithError(err).Warn("rejecting request body")
				p.metrics.UpstreamFailure(op.resource.Name, "request_body")
				httputil.WriteInternalError(w, op.failure)
				return
			}
			body = bytes.NewReader(raw)
		}

		target, err := p.upstreamURL(op, r)
		if err != nil {
			logger.WithError(err).Warn("cannot build upstream URL")
			p.metrics.UpstreamFailure(op.resource.Name, "request")
			httputil.WriteInternalError(w, op.failure)
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), op.method, target, body)
		if err != nil {
			logger.WithError(err).Error("failed to create upstream request")
			p.metrics.UpstreamFailure(op.resource.Name, "request")
			httputil.WriteInternalError(w, op.failure)
			return
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if op.method == http.MethodGet {
			req.Header.Set("Cache-Control", "no-store")
		}

		start := time.Now()
		resp, err := p.client.Do(req)
		if err != nil {
			logger.WithError(err).Error("upstream request failed")
			p.metrics.UpstreamFailure(op.resource.Name, "network")
			httputil.WriteInternalError(w, op.failure)
			return
		}
		defer resp.Body.Close()
		p.metrics.ObserveUpstream(op.resource.Name, op.method, resp.StatusCode, time.Since(start))

		if resp.StatusCode == http.StatusNoContent {
			httputil.WriteNoContent(w)
			return
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			logger.WithError(err).Error("failed to read upstream response")
			p.metrics.UpstreamFailure(op.resource.Name, "response_body")
			httputil.WriteInternalError(w, op.failure)
			return
		}

		if err := httputil.WriteRawJSON(w, resp.StatusCode, relayBody(raw)); err != nil {
			logger.WithError(err).Debug("client went away during relay")
		}
	}
}

// upstreamURL maps the inbound request onto the upstream resource path.
// List endpoints always carry page and limit; an explicitly empty inbound
// value is passed on as empty.
func (p *Proxy) upstreamURL(op operation, r *http.Request) (string, error) {
	path := p.upstream + "/" + op.resource.Name

	if op.item {
		id, err := httputil.ParsePathString(r, "id")
		if err != nil {
			return "", err
		}
		return path + "/" + url.PathEscape(id), nil
	}

	if op.paginated() {
		page := httputil.ParseQueryString(r, "page", defaultPage)
		limit := httputil.ParseQueryString(r, "limit", defaultLimit)
		// built by hand to keep page before limit
		return fmt.Sprintf("%s?page=%s&limit=%s", path, url.QueryEscape(page), url.QueryEscape(limit)), nil
	}

	return path, nil
}

var emptyObject = []byte("{}")

// relayBody returns raw when it is a JSON value other than null, and {}
// otherwise
func relayBody(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) || bytes.Equal(trimmed, []byte("null")) {
		return emptyObject
	}
	return raw
}
