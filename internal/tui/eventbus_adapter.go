package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// regularTypes are the events published without priority. Priority events
// (status, succeeded, failed) arrive on the priority subscription only, so
// nothing is delivered twice.
var regularTypes = []string{
	events.TypeWorkflowStarted,
	events.TypeWorkflowDiscarded,
	events.TypeWorkflowsReplaced,
	events.TypeCampaignCreated,
	events.TypeCampaignUpdated,
	events.TypeViewChanged,
	events.TypeDraftsReplaced,
	events.TypeDraftUpdated,
	events.TypeSampleMode,
	events.TypeFocusSeeded,
}

// EventBusAdapter bridges EventBus events to Bubbletea messages.
type EventBusAdapter struct {
	bus        *events.EventBus
	eventCh    <-chan events.Event
	priorityCh <-chan events.Event
	msgCh      chan tea.Msg
	closeCh    chan struct{}
	done       chan struct{}
	once       sync.Once
}

// NewEventBusAdapter creates a new adapter.
func NewEventBusAdapter(bus *events.EventBus) *EventBusAdapter {
	a := &EventBusAdapter{
		bus:        bus,
		eventCh:    bus.Subscribe(regularTypes...),
		priorityCh: bus.SubscribePriority(),
		msgCh:      make(chan tea.Msg, 100),
		closeCh:    make(chan struct{}),
		done:       make(chan struct{}),
	}
	go a.run()
	return a
}

// MsgChannel returns the channel for Bubbletea to read from.
func (a *EventBusAdapter) MsgChannel() <-chan tea.Msg {
	return a.msgCh
}

// Close unsubscribes from the bus and closes MsgChannel. It waits until the
// subscriptions are gone.
func (a *EventBusAdapter) Close() {
	a.once.Do(func() { close(a.closeCh) })
	<-a.done
}

func (a *EventBusAdapter) run() {
	defer close(a.done)
	defer close(a.msgCh)

	for {
		select {
		case <-a.closeCh:
			a.unsubscribe()
			return

		case event, ok := <-a.priorityCh:
			if !ok {
				a.unsubscribe()
				return
			}
			// Priority messages are never dropped.
			select {
			case a.msgCh <- eventToMsg(event):
			case <-a.closeCh:
				a.unsubscribe()
				return
			}

		case event, ok := <-a.eventCh:
			if !ok {
				a.unsubscribe()
				return
			}
			select {
			case a.msgCh <- eventToMsg(event):
			default:
			}
		}
	}
}

// unsubscribe drains the priority channel while removing it, so a
// publisher blocked on it can release the bus lock.
func (a *EventBusAdapter) unsubscribe() {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range a.priorityCh {
		}
	}()
	a.bus.Unsubscribe(a.priorityCh)
	a.bus.Unsubscribe(a.eventCh)
	<-drained
}

// eventToMsg converts an events.Event to a tea.Msg.
func eventToMsg(event events.Event) tea.Msg {
	kind := core.WorkflowKind(event.Kind())
	switch e := event.(type) {
	case events.StatusEvent:
		return StatusMsg{Kind: e.Kind(), Level: core.StatusLevel(e.Level), Text: e.Text}
	case events.WorkflowStartedEvent:
		return WorkflowMsg{Type: e.Type, Kind: kind, InvocationID: e.InvocationID}
	case events.WorkflowSucceededEvent:
		return WorkflowMsg{Type: e.Type, Kind: kind, InvocationID: e.InvocationID, Duration: e.Duration}
	case events.WorkflowFailedEvent:
		return WorkflowMsg{Type: e.Type, Kind: kind, InvocationID: e.InvocationID, Error: e.Error}
	case events.WorkflowDiscardedEvent:
		return WorkflowMsg{Type: e.Type, Kind: kind, InvocationID: e.InvocationID}
	case events.WorkflowsReplacedEvent:
		return WorkflowMsg{Type: e.Type}
	default:
		return SessionMsg{Type: event.EventType()}
	}
}

// logLine describes a workflow message for the log panel.
func (m WorkflowMsg) logLine() (level, text string) {
	switch m.Type {
	case events.TypeWorkflowStarted:
		return "info", fmt.Sprintf("%s started (%s)", m.Kind, m.InvocationID)
	case events.TypeWorkflowSucceeded:
		return "info", fmt.Sprintf("%s succeeded in %s", m.Kind, m.Duration.Round(time.Millisecond))
	case events.TypeWorkflowFailed:
		return "error", fmt.Sprintf("%s failed: %s", m.Kind, m.Error)
	case events.TypeWorkflowDiscarded:
		return "warn", fmt.Sprintf("%s result discarded (%s)", m.Kind, m.InvocationID)
	case events.TypeWorkflowsReplaced:
		return "info", "workflow states replaced"
	}
	return "debug", m.Type
}
