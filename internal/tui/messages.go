package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// StatusMsg carries a new operator status line.
type StatusMsg struct {
	Kind  string
	Level core.StatusLevel
	Text  string
}

// WorkflowMsg reports a workflow lifecycle change.
type WorkflowMsg struct {
	Type         string
	Kind         core.WorkflowKind
	InvocationID string
	Error        string
	Duration     time.Duration
}

// SessionMsg reports a session-wide change: drafts, ledger, view, sample
// mode or focus seed.
type SessionMsg struct {
	Type string
}

// LogMsg adds a log entry.
type LogMsg struct {
	Time    time.Time
	Level   string
	Message string
}

// CopiedMsg reports the outcome of a copy.
type CopiedMsg struct {
	Result clip.Result
	Err    error
}

// DurationTickMsg refreshes the elapsed time of running workflows.
type DurationTickMsg time.Time

func durationTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return DurationTickMsg(t)
	})
}

// waitForMsg blocks on ch and returns its next message. A closed channel
// yields nil, which ends the subscription loop.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
