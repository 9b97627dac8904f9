package core

import (
	"context"
	"encoding/json"
)

// =============================================================================
// Agent Port
// =============================================================================

// AgentInvoker is the boundary with the remote agent-invocation service.
// Retries, backoff and timeouts belong to the implementation.
type AgentInvoker interface {
	// Invoke sends a task description to the agent identified by agentID.
	// A returned error means the call itself broke; a failure reported by
	// the service comes back as an Envelope with Success=false.
	Invoke(ctx context.Context, message, agentID string) (Envelope, error)
}

// Envelope is the result of one agent invocation.
type Envelope struct {
	Success bool `json:"success"`
	// Result is response.result as sent by the service: either a JSON
	// string or an already-structured value.
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// AgentInfo describes one remote agent.
type AgentInfo struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Purpose string       `json:"purpose" yaml:"purpose"`
	Kind    WorkflowKind `json:"kind" yaml:"kind"`
}

// AgentDirectory maps each workflow kind to the agent serving it. The
// mapping must stay stable for the lifetime of a session.
type AgentDirectory interface {
	// Agent returns the agent bound to kind.
	Agent(kind WorkflowKind) (AgentInfo, bool)

	// List returns all agents in kind order.
	List() []AgentInfo
}

// Default agent identifiers of the hosted agent service.
const (
	DefaultGenerateAgentID = "6997cb3dd5fa166f311285e2"
	DefaultDeliverAgentID  = "6997cb3ed223b2279bfea07a"
	DefaultAnalyzeAgentID  = "6997cb3eec13e822226888ea"
	DefaultScanAgentID     = "6997cea0ea437a36da816328"
)

// StaticDirectory is an AgentDirectory backed by a fixed map.
type StaticDirectory map[WorkflowKind]AgentInfo

// NewStaticDirectory builds a directory from kind → agent ID, filling names
// and purposes from the known agent roster.
func NewStaticDirectory(ids map[WorkflowKind]string) StaticDirectory {
	d := make(StaticDirectory, len(ids))
	for kind, id := range ids {
		info := agentRoster[kind]
		info.ID = id
		info.Kind = kind
		d[kind] = info
	}
	return d
}

// DefaultDirectory returns the directory with the default agent IDs.
func DefaultDirectory() StaticDirectory {
	return NewStaticDirectory(map[WorkflowKind]string{
		KindGenerate: DefaultGenerateAgentID,
		KindDeliver:  DefaultDeliverAgentID,
		KindAnalyze:  DefaultAnalyzeAgentID,
		KindScan:     DefaultScanAgentID,
	})
}

// Agent implements AgentDirectory.
func (d StaticDirectory) Agent(kind WorkflowKind) (AgentInfo, bool) {
	info, ok := d[kind]
	if !ok || info.ID == "" {
		return AgentInfo{}, false
	}
	return info, true
}

// List implements AgentDirectory.
func (d StaticDirectory) List() []AgentInfo {
	out := make([]AgentInfo, 0, len(d))
	for _, kind := range AllKinds() {
		if info, ok := d.Agent(kind); ok {
			out = append(out, info)
		}
	}
	return out
}

var agentRoster = map[WorkflowKind]AgentInfo{
	KindGenerate: {Name: "Content Strategy Coordinator", Purpose: "Generates multi-format developer content from GitHub activity"},
	KindDeliver:  {Name: "Content Delivery Agent", Purpose: "Sends emails via Gmail and creates Google Calendar events"},
	KindAnalyze:  {Name: "Engagement Optimizer", Purpose: "Analyzes engagement metrics and suggests optimizations"},
	KindScan:     {Name: "Trend Scout", Purpose: "Scans real-time developer trends via Perplexity"},
}
