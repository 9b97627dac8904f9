package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// sseKeepAlive is the interval of comment lines sent to idle clients.
var sseKeepAlive = 15 * time.Second

// handleSSE streams bus events. ?kind= limits workflow events to one kind
// (session-wide events are always sent); ?types= is a comma-separated
// event type filter.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	var kind string
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k, err := core.ParseKind(raw)
		if err != nil {
			s.respondDomainError(w, err)
			return
		}
		kind = k.String()
	}
	var types []string
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	bus := s.session.Bus()
	eventCh := bus.SubscribeForKind(kind, types...)
	defer bus.Unsubscribe(eventCh)

	ctx := r.Context()
	s.logger.Info("SSE client connected", "remote_addr", r.RemoteAddr, "kind", kind)

	s.sendSSEEvent(w, flusher, "connected", map[string]string{
		"status": "connected",
	})

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("SSE client disconnected", "remote_addr", r.RemoteAddr)
			return

		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()

		case event, ok := <-eventCh:
			if !ok {
				s.logger.Info("EventBus closed, ending SSE stream")
				return
			}
			s.sendEventToClient(w, flusher, event)
		}
	}
}

// sendSSEEvent writes an event to the SSE stream.
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("failed to marshal SSE data", "error", err)
		return
	}

	// SSE format: event: type\ndata: json\n\n
	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()
}

// sendEventToClient writes event under its own type. Every event type
// carries its json tags, so the event itself is the payload.
func (s *Server) sendEventToClient(w http.ResponseWriter, flusher http.Flusher, event events.Event) {
	s.sendSSEEvent(w, flusher, event.EventType(), event)
}
