package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestChanged_DigestDedupe(t *testing.T) {
	hub := newReloadHub(300 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "app.js")
	if err := os.WriteFile(path, []byte("export {};\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !hub.changed(path) {
		t.Error("first sighting should count as changed")
	}

	if hub.changed(path) {
		t.Error("identical bytes should not count as changed")
	}

	if err := os.WriteFile(path, []byte("export { start };\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite file: %v", err)
	}

	if !hub.changed(path) {
		t.Error("new bytes should count as changed")
	}
}

func TestChanged_UnreadablePath(t *testing.T) {
	hub := newReloadHub(300 * time.Millisecond)

	missing := filepath.Join(t.TempDir(), "gone.js")
	if !hub.changed(missing) {
		t.Error("unreadable path should count as changed")
	}
}

func TestHandleSSE_InitialEvent(t *testing.T) {
	hub := newReloadHub(300 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // handler returns right after the initial event

	req := httptest.NewRequest(http.MethodGet, "/__reload", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	hub.handleSSE(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/event-stream")
	}

	if body := rec.Body.String(); !strings.Contains(body, "data: connected") {
		t.Errorf("body = %q, want initial connected event", body)
	}

	hub.clientMu.Lock()
	defer hub.clientMu.Unlock()
	if len(hub.clients) != 0 {
		t.Errorf("clients = %d, want 0 after disconnect", len(hub.clients))
	}
}
