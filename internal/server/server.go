// Package server implements the local static file server.
//
// Files whose path ends in ".js" are always served with
// "Content-Type: application/javascript"; everything else goes through the
// standard file-serving behavior.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"

	"github.com/spf13/afero"

	"github.com/Ryuya330/CNP-Battle-Arena/internal/config"
)

// Server ties the static file handler, the optional live-reload hub and the
// HTTP runloop together.
type Server struct {
	cfg    *config.Config
	fs     afero.Fs
	reload *reloadHub
}

// New creates a server serving fsys according to cfg. fsys is expected to be
// rooted at the served directory.
func New(cfg *config.Config, fsys afero.Fs) *Server {
	s := &Server{cfg: cfg, fs: fsys}
	if cfg.Watch {
		s.reload = newReloadHub(cfg.Debounce)
	}
	return s
}

// Run starts a server over cfg.Root on the local filesystem and blocks until
// ctx is cancelled or the listener fails.
func Run(ctx context.Context, cfg *config.Config) error {
	fsys := afero.NewBasePathFs(afero.NewOsFs(), cfg.Root)
	return New(cfg, fsys).Serve(ctx)
}

// Serve binds the listening socket and serves until ctx is cancelled.
// Cancellation triggers a graceful shutdown bounded by cfg.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context) error {
	// Force register the WASM mime type
	_ = mime.AddExtensionType(".wasm", "application/wasm")

	mux := http.NewServeMux()

	if s.reload != nil {
		if err := s.reload.start(s.cfg.Root); err != nil {
			log.Printf("Failed to start file watcher: %v", err)
			s.reload = nil
		} else {
			defer s.reload.stop()
			mux.HandleFunc("/__reload", s.reload.handleSSE)
		}
	}

	var root http.Handler = NewHandler(s.fs)
	if s.cfg.Gzip {
		root = gzipHandler(root)
	}
	mux.Handle("/", root)

	httpServer := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: mux,
	}

	// Shutdown handler - watches for context cancellation
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		fmt.Println("\n🛑 Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	fmt.Printf("🌐 Serving %s on port %d\n", s.cfg.Root, s.cfg.Port)
	fmt.Printf("   Open http://localhost:%d in your browser\n", s.cfg.Port)

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownDone
	fmt.Println("✅ Server stopped.")
	return nil
}
