package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func servePage(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPageHandler_Resolution(t *testing.T) {
	h := NewPageHandler(writeStaticSite(t))

	tests := []struct {
		target string
		body   string
	}{
		{"/", "<html>shell</html>"},
		{"/ventas", "<html>ventas</html>"},
		{"/productos", "<html>productos</html>"},
		{"/productos/", "<html>productos</html>"},
		{"/categorias", "<html>shell</html>"},
		{"/categorias/12/editar", "<html>shell</html>"},
		{"/app.js", "console.log('app')"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := servePage(h, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestPageHandler_HTMLIsNotCached(t *testing.T) {
	h := NewPageHandler(writeStaticSite(t))

	assert.Equal(t, "no-store", servePage(h, "/categorias").Header().Get("Cache-Control"))
	assert.Empty(t, servePage(h, "/app.js").Header().Get("Cache-Control"))
}

func TestPageHandler_TraversalStaysInRoot(t *testing.T) {
	h := NewPageHandler(writeStaticSite(t))

	w := servePage(h, "/../../etc/passwd")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>shell</html>", w.Body.String())
}

func TestPageHandler_NoDirectory(t *testing.T) {
	w := servePage(NewPageHandler(""), "/ventas")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())
}

func TestPageHandler_NoIndex(t *testing.T) {
	w := servePage(NewPageHandler(t.TempDir()), "/ventas")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
