package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/platinummonkey/backoffice/pkg/auth"
	"github.com/platinummonkey/backoffice/pkg/httputil"
	"github.com/platinummonkey/backoffice/pkg/observability"
)

const (
	loginFailedMessage  = "Login failed"
	missingTokenMessage = "Missing access_token"
	tokenExpiredMessage = "Token expired"
	upstreamLoginPath   = "/auth/login"
	authMetricsResource = "auth"
)

// loginResponse is the subset of the upstream login answer the console reads
type loginResponse struct {
	Message     json.RawMessage `json:"message"`
	AccessToken any             `json:"access_token"`
}

// Login handles POST /api/auth/login. The inbound body is forwarded to the
// upstream login endpoint as-is; on success the returned access_token is
// stored in the session cookie and never shown to the browser.
func (p *Proxy) Login(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContextOr(r.Context(), p.logger).WithField("handler", "login")

	body, err := httputil.ReadJSONBody(r)
	if err != nil {
		logger.WithError(err).Warn("rejecting login body")
		p.metrics.SessionEvent(observability.SessionLoginError)
		httputil.WriteInternalError(w, loginFailedMessage)
		return
	}

	if p.upstream == "" {
		logger.Error("upstream URL is not configured")
		p.metrics.SessionEvent(observability.SessionLoginError)
		httputil.WriteInternalError(w, MissingUpstreamMessage)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, p.upstream+upstreamLoginPath, bytes.NewReader(body))
	if err != nil {
		logger.WithError(err).Error("failed to create upstream login request")
		p.metrics.SessionEvent(observability.SessionLoginError)
		httputil.WriteInternalError(w, loginFailedMessage)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("upstream login failed")
		p.metrics.SessionEvent(observability.SessionLoginError)
		httputil.WriteInternalError(w, loginFailedMessage)
		return
	}
	defer resp.Body.Close()
	p.metrics.ObserveUpstream(authMetricsResource, http.MethodPost, resp.StatusCode, time.Since(start))

	// an unreadable or non-JSON answer is treated as an empty one
	var data loginResponse
	if raw, err := io.ReadAll(resp.Body); err == nil {
		_ = json.Unmarshal(raw, &data)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := json.RawMessage(`"` + loginFailedMessage + `"`)
		if len(data.Message) > 0 && string(data.Message) != "null" {
			message = data.Message
		}
		logger.WithField("status", resp.StatusCode).Info("login rejected by upstream")
		p.metrics.SessionEvent(observability.SessionLoginRejected)
		_ = httputil.WriteJSON(w, resp.StatusCode, map[string]json.RawMessage{"message": message})
		return
	}

	token, _ := data.AccessToken.(string)
	if token == "" {
		logger.Error("upstream login succeeded without an access_token")
		p.metrics.SessionEvent(observability.SessionLoginError)
		httputil.WriteInternalError(w, missingTokenMessage)
		return
	}

	p.store.Set(w, token)
	p.metrics.SessionEvent(observability.SessionLogin)
	if payload := auth.Decode(token); payload != nil {
		logger = logger.WithField("user_id", payload.SubjectString())
	}
	logger.Info("session started")
	httputil.WriteOK(w)
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (p *Proxy) Logout(w http.ResponseWriter, r *http.Request) {
	p.store.Clear(w)
	p.metrics.SessionEvent(observability.SessionLogout)
	httputil.WriteOK(w)
}

// Me handles GET /api/auth/me, answering with the identity carried by the
// session credential
func (p *Proxy) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := p.store.Token(r)
	if !ok {
		httputil.WriteUnauthorized(w)
		return
	}

	payload, valid := auth.Valid(token)
	if !valid {
		httputil.WriteMessage(w, http.StatusUnauthorized, tokenExpiredMessage)
		return
	}

	_ = httputil.WriteJSON(w, http.StatusOK, payload.Identity())
}
