package tui

import (
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

func receive(t *testing.T, a *EventBusAdapter) interface{} {
	t.Helper()
	select {
	case msg := <-a.MsgChannel():
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestEventBusAdapter_ConvertsEvents(t *testing.T) {
	t.Parallel()
	bus := events.New(10)
	defer bus.Close()

	adapter := NewEventBusAdapter(bus)
	defer adapter.Close()

	bus.Publish(events.NewWorkflowStartedEvent("scan", "inv-1", core.DefaultScanAgentID))

	msg, ok := receive(t, adapter).(WorkflowMsg)
	if !ok {
		t.Fatalf("expected WorkflowMsg, got %T", msg)
	}
	if msg.Kind != core.KindScan || msg.InvocationID != "inv-1" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestEventBusAdapter_PriorityDeliveredOnce(t *testing.T) {
	t.Parallel()
	bus := events.New(10)
	defer bus.Close()

	adapter := NewEventBusAdapter(bus)
	defer adapter.Close()

	bus.PublishPriority(events.NewStatusEvent("generate", "loading", "Working..."))
	bus.Publish(events.NewSampleModeEvent(true))

	status, ok := receive(t, adapter).(StatusMsg)
	if !ok {
		t.Fatalf("expected StatusMsg first, got %T", status)
	}
	if status.Level != core.StatusLoading || status.Text != "Working..." {
		t.Errorf("unexpected status %+v", status)
	}

	session, ok := receive(t, adapter).(SessionMsg)
	if !ok || session.Type != events.TypeSampleMode {
		t.Fatalf("expected sample mode SessionMsg, got %#v", session)
	}

	select {
	case msg := <-adapter.MsgChannel():
		t.Errorf("unexpected extra message %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBusAdapter_FailedMessage(t *testing.T) {
	t.Parallel()
	bus := events.New(10)
	defer bus.Close()

	adapter := NewEventBusAdapter(bus)
	defer adapter.Close()

	bus.PublishPriority(events.NewWorkflowFailedEvent("deliver", "inv-2", "Gmail rejected the message"))

	msg, ok := receive(t, adapter).(WorkflowMsg)
	if !ok {
		t.Fatalf("expected WorkflowMsg, got %T", msg)
	}
	level, text := msg.logLine()
	if level != "error" || text != "deliver failed: Gmail rejected the message" {
		t.Errorf("logLine() = %q, %q", level, text)
	}
}

func TestEventBusAdapter_CloseUnblocksPriorityPublisher(t *testing.T) {
	t.Parallel()
	bus := events.New(1)
	defer bus.Close()

	adapter := NewEventBusAdapter(bus)

	// Nobody reads MsgChannel, so the adapter blocks once its buffer fills.
	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < 300; i++ {
			bus.PublishPriority(events.NewStatusEvent("", "success", "tick"))
		}
	}()

	time.Sleep(20 * time.Millisecond)
	closed := make(chan struct{})
	go func() {
		adapter.Close()
		close(closed)
	}()

	for _, ch := range []chan struct{}{closed, published} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("Close deadlocked with a blocked priority publisher")
		}
	}

	for range adapter.MsgChannel() {
	}
}

func TestEventBusAdapter_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	bus := events.New(10)
	defer bus.Close()

	adapter := NewEventBusAdapter(bus)
	adapter.Close()
	adapter.Close()

	if _, ok := <-adapter.MsgChannel(); ok {
		t.Error("MsgChannel should be closed")
	}
}
