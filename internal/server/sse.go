package server

import (
	"fmt"
	"net/http"
)

// handleSSE streams reload events to a live-reload client until it
// disconnects.
func (h *reloadHub) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan struct{})
	h.clientMu.Lock()
	h.clients[clientChan] = struct{}{}
	h.clientMu.Unlock()

	defer func() {
		h.clientMu.Lock()
		delete(h.clients, clientChan)
		h.clientMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	w.(http.Flusher).Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-clientChan:
			_, _ = fmt.Fprintf(w, "data: reload\n\n")
			w.(http.Flusher).Flush()
		}
	}
}
