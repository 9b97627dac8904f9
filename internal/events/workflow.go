package events

import "time"

// Event type constants for workflow events.
const (
	TypeStatus            = "status"
	TypeWorkflowStarted   = "workflow_started"
	TypeWorkflowSucceeded = "workflow_succeeded"
	TypeWorkflowFailed    = "workflow_failed"
	TypeWorkflowDiscarded = "workflow_discarded"
	TypeWorkflowsReplaced = "workflows_replaced"
)

// StatusEvent carries the operator status line.
type StatusEvent struct {
	BaseEvent
	Level string `json:"level"`
	Text  string `json:"text"`
}

// NewStatusEvent creates a new status event.
func NewStatusEvent(kind, level, text string) StatusEvent {
	return StatusEvent{
		BaseEvent: NewBaseEvent(TypeStatus, kind),
		Level:     level,
		Text:      text,
	}
}

// WorkflowStartedEvent is emitted when an invocation is launched.
type WorkflowStartedEvent struct {
	BaseEvent
	InvocationID string `json:"invocation_id"`
	AgentID      string `json:"agent_id"`
}

// NewWorkflowStartedEvent creates a new workflow started event.
func NewWorkflowStartedEvent(kind, invocationID, agentID string) WorkflowStartedEvent {
	return WorkflowStartedEvent{
		BaseEvent:    NewBaseEvent(TypeWorkflowStarted, kind),
		InvocationID: invocationID,
		AgentID:      agentID,
	}
}

// WorkflowSucceededEvent is emitted once per successful invocation.
type WorkflowSucceededEvent struct {
	BaseEvent
	InvocationID string        `json:"invocation_id"`
	Outcome      string        `json:"outcome"`
	Duration     time.Duration `json:"duration"`
}

// NewWorkflowSucceededEvent creates a new workflow succeeded event.
func NewWorkflowSucceededEvent(kind, invocationID, outcome string, duration time.Duration) WorkflowSucceededEvent {
	return WorkflowSucceededEvent{
		BaseEvent:    NewBaseEvent(TypeWorkflowSucceeded, kind),
		InvocationID: invocationID,
		Outcome:      outcome,
		Duration:     duration,
	}
}

// WorkflowFailedEvent is emitted once per failed invocation.
// This is a PRIORITY event - never dropped.
type WorkflowFailedEvent struct {
	BaseEvent
	InvocationID string `json:"invocation_id"`
	Error        string `json:"error"`
}

// NewWorkflowFailedEvent creates a new workflow failed event.
func NewWorkflowFailedEvent(kind, invocationID, message string) WorkflowFailedEvent {
	return WorkflowFailedEvent{
		BaseEvent:    NewBaseEvent(TypeWorkflowFailed, kind),
		InvocationID: invocationID,
		Error:        message,
	}
}

// WorkflowDiscardedEvent is emitted when a completion arrives after the
// workflow state was replaced underneath it.
type WorkflowDiscardedEvent struct {
	BaseEvent
	InvocationID string `json:"invocation_id"`
}

// NewWorkflowDiscardedEvent creates a new workflow discarded event.
func NewWorkflowDiscardedEvent(kind, invocationID string) WorkflowDiscardedEvent {
	return WorkflowDiscardedEvent{
		BaseEvent:    NewBaseEvent(TypeWorkflowDiscarded, kind),
		InvocationID: invocationID,
	}
}

// WorkflowsReplacedEvent is emitted after a total state replacement.
type WorkflowsReplacedEvent struct {
	BaseEvent
}

// NewWorkflowsReplacedEvent creates a new workflows replaced event.
func NewWorkflowsReplacedEvent() WorkflowsReplacedEvent {
	return WorkflowsReplacedEvent{BaseEvent: NewBaseEvent(TypeWorkflowsReplaced, "")}
}
