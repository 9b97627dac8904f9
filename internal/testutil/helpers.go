package testutil

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// ErrTest is a generic test error.
var ErrTest = errors.New("test error")

// TempDir creates a temporary directory for tests.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "devcontent-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// WaitForEvent reads ch until an event of eventType arrives or timeout
// expires.
func WaitForEvent(t *testing.T, ch <-chan events.Event, eventType string, timeout time.Duration) events.Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed while waiting for %s", eventType)
			}
			if ev.EventType() == eventType {
				return ev
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s", eventType)
		}
	}
}

// Drain returns every event currently buffered in ch.
func Drain(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

// WaitEntered waits until the mock reports a call for agentID.
func WaitEntered(t *testing.T, m *MockInvoker, agentID string, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case id := <-m.Entered():
			if id == agentID {
				return
			}
		case <-deadline:
			t.Fatalf("timeout waiting for call to %s", agentID)
		}
	}
}
