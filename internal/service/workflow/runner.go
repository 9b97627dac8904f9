// Package workflow runs the four console workflows against the agent
// service. Each kind owns an independent state machine:
//
//	Idle ──Start──▶ Running ──▶ Succeeded
//	                   │
//	                   └──────▶ Failed
//
// Succeeded and Failed accept a new Start. A kind that is Running refuses
// new starts, and an agent serves at most one running kind at a time.
package workflow

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/coerce"
)

// SuccessHook runs once a result is accepted and before the kind is marked
// Succeeded, with the input that started the invocation and the coerced
// result. A panicking hook fails the kind and the previous result stays.
// Hooks must not call back into the Runner.
type SuccessHook func(input core.WorkflowInput, result any)

// PanicReporter receives panics recovered from invocation bodies and hooks.
type PanicReporter interface {
	ReportPanic(kind core.WorkflowKind, invocationID string, value any, stack []byte)
}

// Publisher is the subset of the event bus the runner needs.
type Publisher interface {
	Publish(event events.Event)
	PublishPriority(event events.Event)
}

// RunnerDeps holds dependencies for creating a Runner.
type RunnerDeps struct {
	Invoker core.AgentInvoker
	Agents  core.AgentDirectory
	Events  Publisher
	Logger  *logging.Logger
	Hooks   map[core.WorkflowKind]SuccessHook
	Panics  PanicReporter
	Clock   func() time.Time
	NewID   func() string
}

// Runner owns the WorkflowState of every kind.
type Runner struct {
	invoker core.AgentInvoker
	agents  core.AgentDirectory
	events  Publisher
	logger  *logging.Logger
	hooks   map[core.WorkflowKind]SuccessHook
	panics  PanicReporter
	now     func() time.Time
	newID   func() string

	// commit serializes starts, completions and replacements so that
	// events of one invocation are published in order and a replacement
	// is never interleaved with a completion.
	commit sync.Mutex

	mu     sync.RWMutex
	states map[core.WorkflowKind]*core.WorkflowState
	epochs map[core.WorkflowKind]uint64

	wg sync.WaitGroup
}

// NewRunner creates a runner with every kind Idle.
func NewRunner(deps RunnerDeps) (*Runner, error) {
	if deps.Invoker == nil {
		return nil, fmt.Errorf("creating runner: invoker is required")
	}
	if deps.Agents == nil {
		deps.Agents = core.DefaultDirectory()
	}
	if deps.Events == nil {
		deps.Events = events.New(0)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	r := &Runner{
		invoker: deps.Invoker,
		agents:  deps.Agents,
		events:  deps.Events,
		logger:  deps.Logger,
		hooks:   make(map[core.WorkflowKind]SuccessHook, len(deps.Hooks)),
		panics:  deps.Panics,
		now:     deps.Clock,
		newID:   deps.NewID,
		states:  make(map[core.WorkflowKind]*core.WorkflowState),
		epochs:  make(map[core.WorkflowKind]uint64),
	}
	for kind, hook := range deps.Hooks {
		r.hooks[kind] = hook
	}
	for _, kind := range core.AllKinds() {
		r.states[kind] = &core.WorkflowState{Kind: kind, Phase: core.PhaseIdle}
	}
	return r, nil
}

// SetHook installs the post-success hook of kind. It must be called before
// the first Start.
func (r *Runner) SetHook(kind core.WorkflowKind, hook SuccessHook) {
	r.commit.Lock()
	defer r.commit.Unlock()
	r.hooks[kind] = hook
}

type invocation struct {
	id      string
	kind    core.WorkflowKind
	agentID string
	epoch   uint64
	input   core.WorkflowInput
	started time.Time
}

// Start launches one invocation for the input's kind and returns its ID
// without waiting for the agent.
//
// A kind that is already Running is refused with a WORKFLOW_BUSY conflict
// and no event. Validation failures emit an error status and change no
// state.
func (r *Runner) Start(ctx context.Context, input core.WorkflowInput) (string, error) {
	if input == nil {
		return "", core.ErrValidation(core.CodeInvalidInput, "workflow input is required")
	}
	kind := input.Kind()
	if !kind.Valid() {
		return "", core.ErrValidation(core.CodeInvalidKind, fmt.Sprintf("unknown workflow kind %q", kind))
	}

	r.commit.Lock()
	defer r.commit.Unlock()

	r.mu.Lock()
	st := r.states[kind]
	if !st.Phase.CanStart() {
		r.mu.Unlock()
		return "", core.ErrConflict(core.CodeWorkflowBusy, fmt.Sprintf("%s workflow is already running", kind)).
			WithDetail("invocation_id", st.InvocationID)
	}
	r.mu.Unlock()

	if err := input.Validate(); err != nil {
		r.publishStatus(kind, core.StatusError, core.UserMessage(err, core.StatusText(kind).Failure))
		return "", err
	}

	agent, ok := r.agents.Agent(kind)
	if !ok {
		msg := fmt.Sprintf("no agent configured for the %s workflow", kind)
		r.publishStatus(kind, core.StatusError, msg)
		return "", core.ErrInternal(core.CodeNoAgent, msg)
	}

	r.mu.Lock()
	for other, ost := range r.states {
		if other != kind && ost.IsRunning() && ost.ActiveAgentID == agent.ID {
			r.mu.Unlock()
			return "", core.ErrConflict(core.CodeAgentBusy,
				fmt.Sprintf("agent %s is busy with the %s workflow", agent.Name, other)).
				WithDetail("agent_id", agent.ID)
		}
	}
	now := r.now()
	inv := invocation{
		id:      r.newID(),
		kind:    kind,
		agentID: agent.ID,
		epoch:   r.epochs[kind],
		input:   input,
		started: now,
	}
	st.Phase = core.PhaseRunning
	st.LastError = ""
	st.ActiveAgentID = agent.ID
	st.InvocationID = inv.id
	st.StartedAt = &now
	st.FinishedAt = nil
	r.mu.Unlock()

	r.logger.WithKind(kind.String()).WithInvocation(inv.id).Info("starting workflow", "agent_id", agent.ID)
	r.publishStatus(kind, core.StatusLoading, core.StatusText(kind).Loading)
	r.events.Publish(events.NewWorkflowStartedEvent(kind.String(), inv.id, agent.ID))

	// The invocation outlives the caller's request; only the transport
	// decides when a call is too slow.
	invokeCtx := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go r.run(invokeCtx, inv)

	return inv.id, nil
}

func (r *Runner) run(ctx context.Context, inv invocation) {
	defer r.wg.Done()

	env, err := r.invoke(ctx, inv)
	r.complete(inv, env, err)
}

func (r *Runner) invoke(ctx context.Context, inv invocation) (env core.Envelope, err error) {
	defer r.recoverInto(inv, &err)
	return r.invoker.Invoke(ctx, inv.input.Message(), inv.agentID)
}

// recoverInto converts a panic into an internal error carrying the kind's
// exception text.
func (r *Runner) recoverInto(inv invocation, errPtr *error) {
	if v := recover(); v != nil {
		stack := debug.Stack()
		r.logger.WithKind(inv.kind.String()).WithInvocation(inv.id).Error("workflow panicked", "panic", fmt.Sprint(v))
		if r.panics != nil {
			r.panics.ReportPanic(inv.kind, inv.id, v, stack)
		}
		*errPtr = core.ErrInternal(core.CodePanic, core.StatusText(inv.kind).Exception).
			WithDetail("panic", fmt.Sprint(v))
	}
}

func (r *Runner) complete(inv invocation, env core.Envelope, err error) {
	r.commit.Lock()
	defer r.commit.Unlock()

	log := r.logger.WithKind(inv.kind.String()).WithInvocation(inv.id)

	r.mu.RLock()
	stale := r.epochs[inv.kind] != inv.epoch
	r.mu.RUnlock()
	if stale {
		log.Info("discarding stale workflow completion")
		r.events.Publish(events.NewWorkflowDiscardedEvent(inv.kind.String(), inv.id))
		return
	}

	texts := core.StatusText(inv.kind)
	if err != nil {
		msg := texts.Failure
		switch core.GetCategory(err) {
		case core.ErrCatTransport:
			msg = core.UserMessage(err, texts.Failure)
		case core.ErrCatInternal:
			// Unexpected errors never surface their text.
			msg = core.UserMessage(err, texts.Exception)
		}
		log.Warn("workflow invocation failed", "error", err)
		r.fail(inv, msg)
		return
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = texts.Failure
		}
		log.Warn("agent reported failure", "error", env.Error)
		r.fail(inv, msg)
		return
	}

	result, outcome, cerr := coerce.Value(inv.kind, env.Result)
	if cerr != nil {
		log.Warn("agent result unusable", "error", cerr)
		r.fail(inv, texts.Failure)
		return
	}

	// The hook runs before the commit so that a failing hook leaves the
	// previous result in place.
	if hookErr := r.runHook(inv, result); hookErr != nil {
		r.fail(inv, core.UserMessage(hookErr, texts.Exception))
		return
	}

	now := r.now()
	r.mu.Lock()
	st := r.states[inv.kind]
	st.Phase = core.PhaseSucceeded
	st.Result = result
	st.Degraded = outcome == coerce.Degraded
	st.ActiveAgentID = ""
	st.FinishedAt = &now
	r.mu.Unlock()

	log.Info("workflow succeeded", "outcome", string(outcome), "duration", now.Sub(inv.started))
	r.publishStatus(inv.kind, core.StatusSuccess, texts.Success)
	r.events.PublishPriority(events.NewWorkflowSucceededEvent(inv.kind.String(), inv.id, string(outcome), now.Sub(inv.started)))
}

func (r *Runner) runHook(inv invocation, result any) (err error) {
	hook := r.hooks[inv.kind]
	if hook == nil {
		return nil
	}
	defer r.recoverInto(inv, &err)
	hook(inv.input, result)
	return nil
}

// fail moves the kind to Failed. A previous result stays in place.
func (r *Runner) fail(inv invocation, message string) {
	now := r.now()
	r.mu.Lock()
	st := r.states[inv.kind]
	st.Phase = core.PhaseFailed
	st.LastError = message
	st.ActiveAgentID = ""
	st.FinishedAt = &now
	r.mu.Unlock()

	r.publishStatus(inv.kind, core.StatusError, message)
	r.events.PublishPriority(events.NewWorkflowFailedEvent(inv.kind.String(), inv.id, message))
}

func (r *Runner) publishStatus(kind core.WorkflowKind, level core.StatusLevel, text string) {
	r.events.PublishPriority(events.NewStatusEvent(kind.String(), string(level), text))
}

// State returns a copy of the state of kind.
func (r *Runner) State(kind core.WorkflowKind) (core.WorkflowState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.states[kind]
	if !ok {
		return core.WorkflowState{}, false
	}
	return *st, true
}

// States returns copies of every state in kind order.
func (r *Runner) States() []core.WorkflowState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.WorkflowState, 0, len(r.states))
	for _, kind := range core.AllKinds() {
		out = append(out, *r.states[kind])
	}
	return out
}

// Wait blocks until every launched invocation has completed or ctx ends.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
