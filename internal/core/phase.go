package core

import (
	"fmt"
	"strings"
)

// WorkflowKind identifies one of the four independent workflows.
type WorkflowKind string

const (
	// KindGenerate produces a ContentArtifact from repository activity.
	KindGenerate WorkflowKind = "generate"

	// KindDeliver sends the edited email and creates calendar events.
	KindDeliver WorkflowKind = "deliver"

	// KindAnalyze turns campaign engagement metrics into optimization advice.
	KindAnalyze WorkflowKind = "analyze"

	// KindScan scans current developer trends.
	KindScan WorkflowKind = "scan"
)

// AllKinds returns every workflow kind in display order.
func AllKinds() []WorkflowKind {
	return []WorkflowKind{KindGenerate, KindDeliver, KindAnalyze, KindScan}
}

// ParseKind converts a string into a WorkflowKind.
func ParseKind(s string) (WorkflowKind, error) {
	k := WorkflowKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrValidation(CodeInvalidKind, fmt.Sprintf("unknown workflow kind %q", s))
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k WorkflowKind) Valid() bool {
	switch k {
	case KindGenerate, KindDeliver, KindAnalyze, KindScan:
		return true
	}
	return false
}

func (k WorkflowKind) String() string { return string(k) }

// Phase is the lifecycle position of a single workflow.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// CanStart reports whether a workflow in this phase accepts a new start.
// Succeeded and Failed are re-entrant; only Running refuses.
func (p Phase) CanStart() bool {
	return p != PhaseRunning
}

// Terminal reports whether the phase ends an invocation.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

func (p Phase) String() string { return string(p) }

// View names one of the four console screens.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewReview    View = "review"
	ViewAnalytics View = "analytics"
	ViewTrends    View = "trends"
)

// AllViews returns the views in navigation order.
func AllViews() []View {
	return []View{ViewDashboard, ViewReview, ViewAnalytics, ViewTrends}
}

// ParseView converts a string into a View.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ViewDashboard, ViewReview, ViewAnalytics, ViewTrends:
		return v, nil
	}
	return "", ErrValidation(CodeInvalidView, fmt.Sprintf("unknown view %q", s))
}

// Label returns the navigation label shown for the view.
func (v View) Label() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewReview:
		return "Review & Deliver"
	case ViewAnalytics:
		return "Analytics"
	case ViewTrends:
		return "Trends"
	default:
		return string(v)
	}
}

// StatusLevel classifies a status line.
type StatusLevel string

const (
	StatusLoading StatusLevel = "loading"
	StatusSuccess StatusLevel = "success"
	StatusError   StatusLevel = "error"
)

// StatusMessage is the single status line shown to the operator.
type StatusMessage struct {
	Level StatusLevel `json:"type" yaml:"type"`
	Text  string      `json:"text" yaml:"text"`
}
