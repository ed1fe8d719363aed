package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker reports whether the console can reach its upstream API
type HealthChecker struct {
	upstream string
	client   *http.Client
	version  string
}

// NewHealthChecker creates a new health checker. client may be nil.
func NewHealthChecker(upstream string, client *http.Client, version string) *HealthChecker {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HealthChecker{
		upstream: upstream,
		client:   client,
		version:  version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Version      string                      `json:"version,omitempty"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus represents the health of a single dependency
type DependencyStatus struct {
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Latency   time.Duration `json:"latency_ms,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness returns a simple liveness probe (always returns 200 if server is running)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness returns 503 when the upstream is not configured, 200 otherwise
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if status.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// Check performs a health check of every dependency
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Version:      h.version,
		Dependencies: make(map[string]DependencyStatus),
	}

	upstream := h.checkUpstream(ctx)
	status.Dependencies["upstream"] = upstream
	if upstream.Status != StatusHealthy {
		status.Status = upstream.Status
	}

	return status
}

// checkUpstream treats any HTTP response as reachable; only transport
// failures degrade. A missing URL is unhealthy since every proxied call fails.
func (h *HealthChecker) checkUpstream(ctx context.Context) DependencyStatus {
	start := time.Now()
	status := DependencyStatus{
		Status:    StatusHealthy,
		Timestamp: start,
	}

	if h.upstream == "" {
		status.Status = StatusUnhealthy
		status.Message = "Missing API_URL"
		return status
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.upstream, nil)
	if err != nil {
		status.Status = StatusUnhealthy
		status.Message = err.Error()
		return status
	}

	resp, err := h.client.Do(req)
	status.Latency = time.Since(start)
	if err != nil {
		status.Status = StatusDegraded
		status.Message = err.Error()
		return status
	}
	resp.Body.Close()

	return status
}

// RegisterHealthRoutes registers health check endpoints
func RegisterHealthRoutes(mux *http.ServeMux, checker *HealthChecker) {
	mux.HandleFunc("/health", checker.Readiness)
	mux.HandleFunc("/health/live", checker.Liveness)
	mux.HandleFunc("/health/ready", checker.Readiness)
}
