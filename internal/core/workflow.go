package core

import "time"

// WorkflowState is the read model of one workflow kind. The runner owns the
// live value; everything else receives copies.
type WorkflowState struct {
	Kind          WorkflowKind `json:"kind" yaml:"kind"`
	Phase         Phase        `json:"phase" yaml:"phase"`
	ActiveAgentID string       `json:"active_agent_id,omitempty" yaml:"active_agent_id,omitempty"`
	LastError     string       `json:"last_error,omitempty" yaml:"last_error,omitempty"`
	InvocationID  string       `json:"invocation_id,omitempty" yaml:"invocation_id,omitempty"`
	// Result holds the typed payload of the last success: ContentArtifact,
	// DeliveryResult, OptimizationResult or TrendScanResult.
	Result     any        `json:"result,omitempty" yaml:"result,omitempty"`
	Degraded   bool       `json:"degraded,omitempty" yaml:"degraded,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// IsRunning reports whether an invocation is in flight.
func (s WorkflowState) IsRunning() bool {
	return s.Phase == PhaseRunning
}

// Artifact returns the generate result, if any.
func (s WorkflowState) Artifact() (ContentArtifact, bool) {
	a, ok := s.Result.(ContentArtifact)
	return a, ok
}

// Delivery returns the deliver result, if any.
func (s WorkflowState) Delivery() (DeliveryResult, bool) {
	d, ok := s.Result.(DeliveryResult)
	return d, ok
}

// Optimization returns the analyze result, if any.
func (s WorkflowState) Optimization() (OptimizationResult, bool) {
	o, ok := s.Result.(OptimizationResult)
	return o, ok
}

// Trends returns the scan result, if any.
func (s WorkflowState) Trends() (TrendScanResult, bool) {
	t, ok := s.Result.(TrendScanResult)
	return t, ok
}
