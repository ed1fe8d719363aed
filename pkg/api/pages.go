package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/platinummonkey/backoffice/pkg/httputil"
)

const indexFile = "index.html"

// PageHandler serves the exported console from a directory. Paths resolve to
// the file itself, then <path>.html, then <path>/index.html, and finally to the
// root index.html so client-side routes load the application shell.
type PageHandler struct {
	root  http.FileSystem
	files http.Handler
}

// NewPageHandler creates a page handler for dir. An empty dir serves nothing.
func NewPageHandler(dir string) *PageHandler {
	if dir == "" {
		return &PageHandler{}
	}
	root := http.Dir(dir)
	return &PageHandler{
		root:  root,
		files: http.FileServer(root),
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.root == nil {
		httputil.WriteNotFound(w)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	target, ok := h.resolve(name)
	if !ok {
		httputil.WriteNotFound(w)
		return
	}

	if strings.HasSuffix(target, ".html") {
		// pages depend on the session cookie
		w.Header().Set("Cache-Control", "no-store")
	}

	if target == name {
		h.files.ServeHTTP(w, r)
		return
	}

	// http.FileServer redirects requests for */index.html; serve the
	// resolved file directly instead
	h.serveFile(w, r, target)
}

func (h *PageHandler) resolve(name string) (string, bool) {
	candidates := []string{name}
	if name != "/" {
		candidates = append(candidates, name+".html")
	}
	candidates = append(candidates, path.Join(name, indexFile), "/"+indexFile)

	for _, c := range candidates {
		if h.isFile(c) {
			return c, true
		}
	}
	return "", false
}

func (h *PageHandler) isFile(name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

func (h *PageHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			httputil.WriteNotFound(w)
			return
		}
		httputil.WriteInternalError(w, "Internal server error")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		httputil.WriteInternalError(w, "Internal server error")
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
