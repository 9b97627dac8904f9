package workflow

import (
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// Tx mutates workflow state inside Replace.
type Tx struct {
	r *Runner
}

// Force sets kind to Succeeded with result, as if an invocation had just
// returned it. No hook runs.
func (tx *Tx) Force(kind core.WorkflowKind, result any) {
	now := tx.r.now()
	tx.r.mu.Lock()
	defer tx.r.mu.Unlock()
	if st, ok := tx.r.states[kind]; ok {
		*st = core.WorkflowState{
			Kind:       kind,
			Phase:      core.PhaseSucceeded,
			Result:     result,
			FinishedAt: &now,
		}
	}
}

// Reset returns kind to Idle with no result.
func (tx *Tx) Reset(kind core.WorkflowKind) {
	tx.r.mu.Lock()
	defer tx.r.mu.Unlock()
	if _, ok := tx.r.states[kind]; ok {
		tx.r.states[kind] = &core.WorkflowState{Kind: kind, Phase: core.PhaseIdle}
	}
}

// Replace applies a total state replacement atomically with respect to
// starts and completions. Every in-flight invocation becomes stale and its
// completion is discarded; a kind left Running by fn is reset to Idle.
//
// fn runs under the runner's commit lock. It may mutate other stores but
// must use tx, not the Runner, for workflow state.
func (r *Runner) Replace(fn func(tx *Tx)) {
	r.commit.Lock()
	defer r.commit.Unlock()

	r.mu.Lock()
	for _, kind := range core.AllKinds() {
		r.epochs[kind]++
	}
	r.mu.Unlock()

	fn(&Tx{r: r})

	r.mu.Lock()
	for kind, st := range r.states {
		if st.IsRunning() {
			r.states[kind] = &core.WorkflowState{Kind: kind, Phase: core.PhaseIdle}
		}
	}
	r.mu.Unlock()

	r.logger.Info("workflow states replaced")
	r.events.Publish(events.NewWorkflowsReplacedEvent())
}
