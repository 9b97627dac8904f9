package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// mockFlusher wraps httptest.ResponseRecorder to satisfy http.Flusher.
type mockFlusher struct{}

func (mockFlusher) Flush() {}

func parseSSEPayload(t *testing.T, body string) (eventType string, payload map[string]interface{}) {
	t.Helper()
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			raw := strings.TrimPrefix(line, "data: ")
			if err := json.Unmarshal([]byte(raw), &payload); err != nil {
				t.Fatalf("failed to unmarshal SSE data: %v", err)
			}
		}
	}
	return
}

func TestSendEventToClient_WorkflowFailed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.server.sendEventToClient(rec, mockFlusher{}, events.NewWorkflowFailedEvent("deliver", "inv-7", "Failed to deliver content."))

	eventType, payload := parseSSEPayload(t, rec.Body.String())
	assert.Equal(t, events.TypeWorkflowFailed, eventType)
	assert.Equal(t, "deliver", payload["kind"])
	assert.Equal(t, "inv-7", payload["invocation_id"])
	assert.Equal(t, "Failed to deliver content.", payload["error"])
}

func TestSendEventToClient_Status(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.server.sendEventToClient(rec, mockFlusher{}, events.NewStatusEvent("scan", "loading", "Scanning..."))

	eventType, payload := parseSSEPayload(t, rec.Body.String())
	assert.Equal(t, events.TypeStatus, eventType)
	assert.Equal(t, "loading", payload["level"])
	assert.Equal(t, "Scanning...", payload["text"])
}

func TestHandleSSE_InvalidKind(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/events?kind=publish", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// readEvent returns the next event type on the stream.
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		}
	}
}

func TestHandleSSE_StreamsSessionEvents(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(env.server.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events?kind=generate&types=focus_seeded,sample_mode", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)
	require.Equal(t, "connected", readEvent(t, reader))

	// Session-wide events pass the kind filter; the status event is
	// filtered out by type.
	env.session.ApplyTrend("Rust in the kernel", "")
	env.session.SetSampleMode(true)

	assert.Equal(t, events.TypeFocusSeeded, readEvent(t, reader))
	assert.Equal(t, events.TypeSampleMode, readEvent(t, reader))
}
