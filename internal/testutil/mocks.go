package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// Reply is one scripted answer of the MockInvoker.
type Reply struct {
	Envelope core.Envelope
	Err      error
	Panic    any
}

// InvokeCall records a call to the mock.
type InvokeCall struct {
	Message   string
	AgentID   string
	Timestamp time.Time
}

// MockInvoker implements core.AgentInvoker for testing. Replies are queued
// per agent; the last reply of a queue repeats once the queue drains.
type MockInvoker struct {
	mu      sync.Mutex
	replies map[string][]Reply
	gates   map[string]chan struct{}
	calls   []InvokeCall
	entered chan string
}

// NewMockInvoker creates a new mock invoker.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{
		replies: make(map[string][]Reply),
		gates:   make(map[string]chan struct{}),
		entered: make(chan string, 256),
	}
}

// On queues replies for agentID.
func (m *MockInvoker) On(agentID string, replies ...Reply) *MockInvoker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[agentID] = append(m.replies[agentID], replies...)
	return m
}

// Succeed queues a successful envelope whose result is v encoded as JSON.
func (m *MockInvoker) Succeed(agentID string, v any) *MockInvoker {
	return m.On(agentID, Reply{Envelope: SuccessEnvelope(v)})
}

// Fail queues an envelope reporting failure with message.
func (m *MockInvoker) Fail(agentID, message string) *MockInvoker {
	return m.On(agentID, Reply{Envelope: core.Envelope{Success: false, Error: message}})
}

// Block makes subsequent calls for agentID wait until Release is called.
func (m *MockInvoker) Block(agentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.gates[agentID]; !ok {
		m.gates[agentID] = make(chan struct{})
	}
}

// Release unblocks every waiting and future call for agentID.
func (m *MockInvoker) Release(agentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gate, ok := m.gates[agentID]; ok {
		close(gate)
		delete(m.gates, agentID)
	}
}

// Entered receives the agent ID of every call as soon as it starts.
func (m *MockInvoker) Entered() <-chan string {
	return m.entered
}

// Invoke implements core.AgentInvoker.
func (m *MockInvoker) Invoke(ctx context.Context, message, agentID string) (core.Envelope, error) {
	m.mu.Lock()
	m.calls = append(m.calls, InvokeCall{Message: message, AgentID: agentID, Timestamp: time.Now()})
	gate := m.gates[agentID]
	m.mu.Unlock()

	select {
	case m.entered <- agentID:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return core.Envelope{}, ctx.Err()
		}
	}

	reply := m.next(agentID)
	if reply.Panic != nil {
		panic(reply.Panic)
	}
	return reply.Envelope, reply.Err
}

func (m *MockInvoker) next(agentID string) Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	queue := m.replies[agentID]
	if len(queue) == 0 {
		return Reply{Envelope: core.Envelope{Success: false, Error: "no scripted reply"}}
	}
	reply := queue[0]
	if len(queue) > 1 {
		m.replies[agentID] = queue[1:]
	}
	return reply
}

// Calls returns a copy of all recorded calls.
func (m *MockInvoker) Calls() []InvokeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InvokeCall(nil), m.calls...)
}

// CallCount returns the number of calls made for agentID.
func (m *MockInvoker) CallCount(agentID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.AgentID == agentID {
			n++
		}
	}
	return n
}

// SuccessEnvelope builds a successful envelope carrying v as a structured
// result.
func SuccessEnvelope(v any) core.Envelope {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return core.Envelope{Success: true, Result: data}
}

// StringEnvelope builds a successful envelope whose result is a JSON string,
// the way agents usually answer.
func StringEnvelope(text string) core.Envelope {
	data, _ := json.Marshal(text)
	return core.Envelope{Success: true, Result: data}
}
