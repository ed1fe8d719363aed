package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/backoffice/pkg/api"
	"github.com/platinummonkey/backoffice/pkg/auth/authtest"
	"github.com/platinummonkey/backoffice/pkg/client"
	"github.com/platinummonkey/backoffice/pkg/observability"
	"github.com/platinummonkey/backoffice/pkg/paginate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory upstream API behind a real console server
type fakeBackend struct {
	token string

	mu       sync.Mutex
	bodies   map[string]string
	listHits map[string]int
	products []client.Product
}

type testEnv struct {
	backend     *fakeBackend
	console     *httptest.Server
	sessionFile string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	b := &fakeBackend{
		token:    authtest.ValidToken(t),
		bodies:   make(map[string]string),
		listHits: make(map[string]int),
	}
	for i := 1; i <= 25; i++ {
		b.products = append(b.products, client.Product{
			ID:           strconv.Itoa(i),
			Name:         fmt.Sprintf("Producto %02d", i),
			Price:        fmt.Sprintf("%d.50", i),
			CategoryID:   "3",
			CategoryName: "Bebidas",
		})
	}

	upstream := httptest.NewServer(b.router())
	t.Cleanup(upstream.Close)

	console := httptest.NewServer(api.NewServer(api.Dependencies{
		UpstreamURL: upstream.URL,
		Logger:      observability.NewLogger(observability.ErrorLevel, io.Discard),
	}))
	t.Cleanup(console.Close)

	return &testEnv{
		backend:     b,
		console:     console,
		sessionFile: filepath.Join(t.TempDir(), "session"),
	}
}

func (b *fakeBackend) router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/auth/login", b.login).Methods(http.MethodPost)
	r.HandleFunc("/categories", b.authed(b.listCategories)).Methods(http.MethodGet)
	r.HandleFunc("/categories", b.authed(b.echo("categories", `{"id":"99","name":"Bebidas"}`))).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id}", b.authed(b.echo("category", `{"id":"7","name":"Lacteos","position":2}`))).Methods(http.MethodGet, http.MethodPatch)
	r.HandleFunc("/products", b.authed(b.listProducts)).Methods(http.MethodGet)
	r.HandleFunc("/products", b.authed(b.echo("products", `{"id":"26","name":"Agua","price":"1.25"}`))).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", b.authed(b.echo("product", `{"id":"5","name":"Producto 05","price":"9.99"}`))).Methods(http.MethodPatch)
	r.HandleFunc("/products/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "404" {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Product not found"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})).Methods(http.MethodDelete)
	r.HandleFunc("/sales", b.authed(b.echo("sales", `{"id":"s-1","total":"12.00","items":[]}`))).Methods(http.MethodPost)
	r.HandleFunc("/sales/{id}", b.authed(b.echo("sale", `{"id":"s-1","createdAt":"2026-01-02","total":"12.00","items":[{"productId":"5","quantity":2,"unitPrice":"6.00","product":{"id":"5","name":"Producto 05"}}]}`))).Methods(http.MethodGet)
	return r
}

func (b *fakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Unauthorized"}`)
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Password != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Invalid credentials"}`)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"access_token": b.token})
}

func (b *fakeBackend) echo(key, response string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies[r.Method+" "+key] = string(body)
		b.mu.Unlock()
		io.WriteString(w, response)
	}
}

func (b *fakeBackend) listCategories(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, `{"data":[{"id":"3","name":"Bebidas","position":1,"childrenCount":2,"productsCount":25},`+
		`{"id":"4","name":"Gaseosas","position":0,"parent":{"id":"3","name":"Bebidas"}}],`+
		`"meta":{"page":1,"limit":10,"total":2,"totalPages":1}}`)
}

func (b *fakeBackend) listProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	b.mu.Lock()
	b.listHits[r.URL.RawQuery]++
	b.mu.Unlock()

	start := (page - 1) * limit
	end := min(start+limit, len(b.products))
	data := []client.Product{}
	if start >= 0 && start < len(b.products) {
		data = b.products[start:end]
	}
	_ = json.NewEncoder(w).Encode(client.ProductPage{
		Data: data,
		Meta: paginate.Meta{
			Page:       page,
			Limit:      limit,
			Total:      len(b.products),
			TotalPages: (len(b.products) + limit - 1) / limit,
		},
	})
}

func (b *fakeBackend) hits(query string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listHits[query]
}

func (b *fakeBackend) body(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		out:        &out,
		errOut:     &errOut,
		in:         strings.NewReader(stdin),
		httpClient: &http.Client{},
	}
	cmd := newRootCommand(a)
	cmd.SetArgs(append([]string{"--server", e.console.URL, "--session-file", e.sessionFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	_, err := e.run(t, "", "login", "-e", "admin@example.com", "-p", "secret")
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "login", "-e", "admin@example.com", "-p", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as admin@example.com\n", out)

	saved, err := os.ReadFile(env.sessionFile)
	require.NoError(t, err)
	assert.Equal(t, env.backend.token+"\n", string(saved))

	info, err := os.Stat(env.sessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "secret\n", "login", "-e", "admin@example.com")
	require.NoError(t, err)
	assert.FileExists(t, env.sessionFile)
}

func TestLogin_Rejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "login", "-e", "admin@example.com", "-p", "wrong")
	require.Error(t, err)
	assert.Equal(t, "login failed: Invalid credentials", err.Error())
	assert.NoFileExists(t, env.sessionFile)
}

func TestLogin_RequiresEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "login", "-p", "secret")
	assert.EqualError(t, err, "--email is required")
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	env.login(t)

	out, err := env.run(t, "", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, "admin@example.com")

	out, err = env.run(t, "", "me", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"user-1","email":"admin@example.com"}`, out)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	out, err := env.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)
	assert.NoFileExists(t, env.sessionFile)

	_, err = env.run(t, "", "me")
	assert.Error(t, err)
}

func TestInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "me", "-o", "xml")
	assert.EqualError(t, err, `invalid output format "xml" (must be table, json or yaml)`)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	t.Run("list table", func(t *testing.T) {
		out, err := env.run(t, "", "categories", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, "Gaseosas")
		assert.Contains(t, out, "Page 1 of 1 (2 total)")
	})

	t.Run("list yaml", func(t *testing.T) {
		out, err := env.run(t, "", "categories", "list", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "name: Gaseosas")
	})

	t.Run("create", func(t *testing.T) {
		out, err := env.run(t, "", "categories", "create", "Bebidas", "--parent", "1")
		require.NoError(t, err)
		assert.Equal(t, "Created category Bebidas (99)\n", out)
		assert.JSONEq(t, `{"name":"Bebidas","parentId":"1"}`, env.backend.body("POST categories"))
	})

	t.Run("update sends only changed fields", func(t *testing.T) {
		_, err := env.run(t, "", "categories", "update", "7", "--position", "2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"position":2}`, env.backend.body("PATCH category"))
	})

	t.Run("update clears parent", func(t *testing.T) {
		_, err := env.run(t, "", "categories", "update", "7", "--clear-parent")
		require.NoError(t, err)
		assert.JSONEq(t, `{"parentId":null}`, env.backend.body("PATCH category"))
	})

	t.Run("update needs a change", func(t *testing.T) {
		_, err := env.run(t, "", "categories", "update", "7")
		assert.EqualError(t, err, "nothing to update")
	})
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	t.Run("list page", func(t *testing.T) {
		out, err := env.run(t, "", "products", "list", "--page", "3", "--limit", "10")
		require.NoError(t, err)
		assert.Contains(t, out, "Producto 21")
		assert.Contains(t, out, "Producto 25")
		assert.NotContains(t, out, "Producto 20")
		assert.Contains(t, out, "Page 3 of 3 (25 total)")
	})

	t.Run("create requires category", func(t *testing.T) {
		_, err := env.run(t, "", "products", "create", "Agua", "--price", "1.25")
		assert.EqualError(t, err, "--category is required")
	})

	t.Run("create", func(t *testing.T) {
		_, err := env.run(t, "", "products", "create", "Agua", "--price", "1.25", "--category", "3")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Agua","price":1.25,"categoryId":"3"}`, env.backend.body("POST products"))
	})

	t.Run("update price", func(t *testing.T) {
		_, err := env.run(t, "", "products", "update", "5", "--price", "9.99")
		require.NoError(t, err)
		assert.JSONEq(t, `{"price":9.99}`, env.backend.body("PATCH product"))
	})

	t.Run("delete", func(t *testing.T) {
		out, err := env.run(t, "", "products", "delete", "5")
		require.NoError(t, err)
		assert.Equal(t, "Deleted product 5\n", out)
	})

	t.Run("delete relays upstream message", func(t *testing.T) {
		_, err := env.run(t, "", "products", "delete", "404")
		assert.EqualError(t, err, "failed to delete product: Product not found")
	})
}

func TestSales(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	t.Run("create", func(t *testing.T) {
		out, err := env.run(t, "", "sales", "create", "--item", "5:2", "--item", "9:1")
		require.NoError(t, err)
		assert.Equal(t, "Recorded sale s-1 (total 12.00)\n", out)
		assert.JSONEq(t, `{"items":[{"productId":"5","quantity":2},{"productId":"9","quantity":1}]}`,
			env.backend.body("POST sales"))
	})

	t.Run("get", func(t *testing.T) {
		out, err := env.run(t, "", "sales", "get", "s-1")
		require.NoError(t, err)
		assert.Contains(t, out, "Producto 05")
	})

	t.Run("no update or delete commands", func(t *testing.T) {
		root := newRootCommand(&app{out: io.Discard, errOut: io.Discard, in: strings.NewReader("")})
		for _, name := range []string{"update", "delete"} {
			found, _, err := root.Find([]string{"sales", name})
			require.NoError(t, err)
			assert.Equal(t, "sales", found.Name())
		}
	})
}

func TestParseSaleLines(t *testing.T) {
	lines, err := parseSaleLines([]string{"a:1", "b:3"})
	require.NoError(t, err)
	assert.Equal(t, []client.SaleLine{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 3}}, lines)

	for _, bad := range [][]string{nil, {"a"}, {":1"}, {"a:0"}, {"a:x"}, {"a:-2"}} {
		_, err := parseSaleLines(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestBrowse(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	out, err := env.run(t, "n\nn\nn\np\nl 20\nq\n", "browse", "products")
	require.NoError(t, err)

	assert.Contains(t, out, "Page 1 of 3 (25 total)")
	assert.Contains(t, out, "Page 2 of 3 (25 total)")
	assert.Contains(t, out, "Page 3 of 3 (25 total)")
	assert.Contains(t, out, "Already on the last page.")
	assert.Contains(t, out, "Page 1 of 2 (25 total)")

	assert.Equal(t, 1, env.backend.hits("page=1&limit=10"))
	assert.Equal(t, 2, env.backend.hits("page=2&limit=10"), "next then prev both land on page 2")
	assert.Equal(t, 1, env.backend.hits("page=3&limit=10"))
	assert.Equal(t, 1, env.backend.hits("page=1&limit=20"))
}

func TestBrowse_EndOfInput(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	out, err := env.run(t, "bogus\ng\n", "browse", "products", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 5 (25 total)")
	assert.Contains(t, out, `Unknown command "bogus".`)
	assert.Contains(t, out, "g needs a number.")
}

func TestBrowse_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "q\n", "browse", "categories", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"error": "Unauthorized"`)
}
