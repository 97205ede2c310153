package server

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// scriptContentType is sent for every ".js" response so browsers accept the
// files as ES modules regardless of the platform MIME database.
const scriptContentType = "application/javascript"

// Handler serves a directory of static files. Paths ending in ".js" are
// served directly with a fixed JavaScript content type; everything else is
// delegated to the fallback file server (MIME guessing, directory index,
// Last-Modified headers, 404 on missing files).
type Handler struct {
	fs       afero.Fs
	fallback http.Handler
}

// NewHandler creates a handler serving fsys, which is expected to be rooted
// at the served directory.
func NewHandler(fsys afero.Fs) *Handler {
	return &Handler{
		fs:       fsys,
		fallback: http.FileServer(afero.NewHttpFs(fsys)),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, ".js") {
		h.serveScript(w, r)
		return
	}
	h.fallback.ServeHTTP(w, r)
}

// serveScript sends the raw bytes of a ".js" file with the fixed JavaScript
// content type. Missing files get a 404 instead of the default handler's
// treatment so the override branch keeps the same safety net.
func (h *Handler) serveScript(w http.ResponseWriter, r *http.Request) {
	rawPath := r.URL.Path

	if err := validateRequestPath(rawPath); err != nil {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("403 - Forbidden: Invalid path"))
		return
	}

	f, err := h.fs.Open(normalizeRequestPath(rawPath))
	if err != nil {
		if os.IsNotExist(err) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 - Page Not Found"))
		} else if os.IsPermission(err) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("403 - Forbidden"))
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("500 - Internal Server Error"))
		}
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close script file", "path", rawPath, "error", cerr)
		}
	}()

	// A directory named like a script gets the default treatment
	if info, err := f.Stat(); err == nil && info.IsDir() {
		h.fallback.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", scriptContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, f)
}
