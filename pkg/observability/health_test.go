package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_Liveness(t *testing.T) {
	checker := NewHealthChecker("", nil, "test")

	rec := httptest.NewRecorder()
	checker.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusHealthy, body["status"])
}

func TestHealthChecker_Check(t *testing.T) {
	t.Run("upstream reachable", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// any status counts as reachable
			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstream.Close()

		status := NewHealthChecker(upstream.URL, upstream.Client(), "1.2.3").Check(context.Background())
		assert.Equal(t, StatusHealthy, status.Status)
		assert.Equal(t, "1.2.3", status.Version)
		assert.Equal(t, StatusHealthy, status.Dependencies["upstream"].Status)
	})

	t.Run("upstream not configured", func(t *testing.T) {
		status := NewHealthChecker("", nil, "").Check(context.Background())
		assert.Equal(t, StatusUnhealthy, status.Status)
		assert.Equal(t, "Missing API_URL", status.Dependencies["upstream"].Message)
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		upstream := httptest.NewServer(http.NotFoundHandler())
		url := upstream.URL
		upstream.Close()

		status := NewHealthChecker(url, nil, "").Check(context.Background())
		assert.Equal(t, StatusDegraded, status.Status)
		assert.NotEmpty(t, status.Dependencies["upstream"].Message)
	})
}

func TestHealthChecker_Readiness(t *testing.T) {
	t.Run("unhealthy returns 503", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthChecker("", nil, "").Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("degraded returns 200", func(t *testing.T) {
		upstream := httptest.NewServer(http.NotFoundHandler())
		url := upstream.URL
		upstream.Close()

		rec := httptest.NewRecorder()
		NewHealthChecker(url, nil, "").Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, StatusDegraded, status.Status)
	})
}

func TestRegisterHealthRoutes(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHealthRoutes(mux, NewHealthChecker("", nil, ""))

	for path, want := range map[string]int{
		"/health":       http.StatusServiceUnavailable,
		"/health/live":  http.StatusOK,
		"/health/ready": http.StatusServiceUnavailable,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}
