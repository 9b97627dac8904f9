// Package console composes the workflow runner and the session stores into
// one operator session.
//
// The session wires the cross-component rules: a successful generate fills
// the drafts, records a campaign and opens the review view; a successful
// deliver marks the newest campaign Sent; applying a trend seeds the next
// generate. Sample mode swaps the whole session for canned data in one
// atomic replacement.
package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/ledger"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/navigation"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/workflow"
)

// SessionDeps holds dependencies for creating a Session.
type SessionDeps struct {
	Invoker     core.AgentInvoker
	Agents      core.AgentDirectory
	Bus         *events.EventBus
	Logger      *logging.Logger
	Clock       func() time.Time
	Panics      workflow.PanicReporter
	NewID       func() string
	InitialView core.View
	// SampleData overrides the built-in sample session.
	SampleData *SampleData
}

// Session is one operator console session.
type Session struct {
	runner *workflow.Runner
	drafts *drafts.Store
	ledger *ledger.Ledger
	nav    *navigation.Controller
	agents core.AgentDirectory
	bus    *events.EventBus
	tap    *statusTap
	logger *logging.Logger
	sample *SampleData
	now    func() time.Time

	toggle     sync.Mutex
	mu         sync.RWMutex
	sampleMode bool
	focusSeed  string
}

// NewSession creates a session with every workflow Idle and sample mode off.
func NewSession(deps SessionDeps) (*Session, error) {
	if deps.Bus == nil {
		deps.Bus = events.New(0)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Agents == nil {
		deps.Agents = core.DefaultDirectory()
	}
	if deps.InitialView == "" {
		deps.InitialView = core.ViewDashboard
	}
	if deps.SampleData == nil {
		sd, err := LoadSampleData()
		if err != nil {
			return nil, err
		}
		deps.SampleData = sd
	}

	s := &Session{
		drafts: drafts.NewStore(deps.Bus),
		ledger: ledger.New(deps.Bus, ledger.WithClock(deps.Clock)),
		nav:    navigation.New(deps.InitialView, deps.Bus),
		agents: deps.Agents,
		bus:    deps.Bus,
		tap:    &statusTap{bus: deps.Bus},
		logger: deps.Logger,
		sample: deps.SampleData,
		now:    deps.Clock,
	}

	runner, err := workflow.NewRunner(workflow.RunnerDeps{
		Invoker: deps.Invoker,
		Agents:  deps.Agents,
		Events:  s.tap,
		Logger:  deps.Logger,
		Panics:  deps.Panics,
		Clock:   deps.Clock,
		NewID:   deps.NewID,
		Hooks: map[core.WorkflowKind]workflow.SuccessHook{
			core.KindGenerate: s.onGenerateSucceeded,
			core.KindDeliver:  s.onDeliverSucceeded,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.runner = runner
	return s, nil
}

func (s *Session) onGenerateSucceeded(input core.WorkflowInput, result any) {
	artifact, ok := result.(core.ContentArtifact)
	if !ok {
		panic(fmt.Sprintf("generate produced %T", result))
	}
	var repo string
	if in, ok := input.(core.GenerateInput); ok {
		repo = in.Repo
	}
	s.drafts.OnGenerateSucceeded(artifact)
	rec := s.ledger.OnGenerateSucceeded(artifact, repo)
	s.nav.Select(core.ViewReview)
	s.logger.WithKind(core.KindGenerate.String()).Info("campaign recorded", "campaign_id", rec.ID, "title", rec.Title)
}

func (s *Session) onDeliverSucceeded(core.WorkflowInput, any) {
	if rec, ok := s.ledger.OnDeliverSucceeded(); ok {
		s.logger.WithKind(core.KindDeliver.String()).Info("campaign sent", "campaign_id", rec.ID)
	}
}

// Start dispatches input to its workflow.
func (s *Session) Start(ctx context.Context, input core.WorkflowInput) (string, error) {
	switch in := input.(type) {
	case core.GenerateInput:
		return s.Generate(ctx, in)
	case *core.GenerateInput:
		return s.Generate(ctx, *in)
	case core.DeliverInput:
		return s.Deliver(ctx, in)
	case *core.DeliverInput:
		return s.Deliver(ctx, *in)
	default:
		return s.runner.Start(ctx, input)
	}
}

// Generate starts content generation. A blank focus takes the pending trend
// seed, which is consumed once the start is accepted.
func (s *Session) Generate(ctx context.Context, in core.GenerateInput) (string, error) {
	seed := s.FocusSeed()
	usedSeed := false
	if strings.TrimSpace(in.Focus) == "" && seed != "" {
		in.Focus = seed
		usedSeed = true
	}
	id, err := s.runner.Start(ctx, in)
	if err != nil {
		return "", err
	}
	if usedSeed {
		s.mu.Lock()
		if s.focusSeed == seed {
			s.focusSeed = ""
		}
		s.mu.Unlock()
	}
	return id, nil
}

// Deliver starts delivery of the current email draft. Subject and body are
// copied from the draft store at start time.
func (s *Session) Deliver(ctx context.Context, in core.DeliverInput) (string, error) {
	email := s.drafts.Email()
	in.Subject = email.Subject
	in.Body = email.Body
	return s.runner.Start(ctx, in)
}

// Analyze starts engagement analysis.
func (s *Session) Analyze(ctx context.Context, in core.AnalyzeInput) (string, error) {
	return s.runner.Start(ctx, in)
}

// Scan starts a trend scan.
func (s *Session) Scan(ctx context.Context, in core.ScanInput) (string, error) {
	return s.runner.Start(ctx, in)
}

// ApplyTrend loads a trend into the content focus and returns to the
// dashboard.
func (s *Session) ApplyTrend(name, angle string) string {
	focus := core.FocusSeed(name, angle)
	s.mu.Lock()
	s.focusSeed = focus
	s.mu.Unlock()

	s.nav.Select(core.ViewDashboard)
	s.tap.PublishPriority(events.NewStatusEvent("", string(core.StatusSuccess), core.TrendAppliedText(name)))
	s.bus.Publish(events.NewFocusSeededEvent(focus))
	return focus
}

// FocusSeed returns the pending content focus, if any.
func (s *Session) FocusSeed() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focusSeed
}

// SetSampleMode switches the whole session to the canned sample data or
// back to an empty session. Invocations in flight at the switch are
// discarded when they complete. Setting the current mode again is a no-op.
func (s *Session) SetSampleMode(on bool) {
	s.toggle.Lock()
	defer s.toggle.Unlock()

	s.mu.Lock()
	if s.sampleMode == on {
		s.mu.Unlock()
		return
	}
	s.sampleMode = on
	s.focusSeed = ""
	s.mu.Unlock()

	s.runner.Replace(func(tx *workflow.Tx) {
		if on {
			tx.Force(core.KindGenerate, s.sample.Content)
			tx.Force(core.KindDeliver, s.sample.Delivery)
			tx.Force(core.KindAnalyze, s.sample.Optimization)
			tx.Force(core.KindScan, s.sample.trendsAt(s.now()))
			s.drafts.OnGenerateSucceeded(s.sample.Content)
			s.ledger.Replace(s.sample.campaigns())
			return
		}
		for _, kind := range core.AllKinds() {
			tx.Reset(kind)
		}
		s.drafts.Reset()
		s.ledger.Reset()
	})

	s.logger.Info("sample mode changed", "enabled", on)
	s.bus.Publish(events.NewSampleModeEvent(on))
}

// SampleMode reports whether sample data is shown.
func (s *Session) SampleMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sampleMode
}

// Presets returns the form values for the current mode. A pending trend
// seed replaces the generate focus.
func (s *Session) Presets() Presets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := EmptyPresets()
	if s.sampleMode {
		p = s.sample.Presets
	}
	if s.focusSeed != "" {
		p.Generate.Focus = s.focusSeed
	}
	return p
}

// Activity returns the repository activity feed. It is only populated in
// sample mode.
func (s *Session) Activity() []ActivityItem {
	if !s.SampleMode() {
		return []ActivityItem{}
	}
	return append([]ActivityItem(nil), s.sample.Activity...)
}

// Status returns the last status line, if any.
func (s *Session) Status() (core.StatusMessage, bool) {
	return s.tap.last()
}

// Agents lists the configured agents.
func (s *Session) Agents() []core.AgentInfo {
	return s.agents.List()
}

// Snapshot is the full read model of a session.
type Snapshot struct {
	TakenAt    time.Time             `json:"taken_at" yaml:"taken_at"`
	View       core.View             `json:"view" yaml:"view"`
	SampleMode bool                  `json:"sample_mode" yaml:"sample_mode"`
	FocusSeed  string                `json:"focus_seed,omitempty" yaml:"focus_seed,omitempty"`
	Status     *core.StatusMessage   `json:"status,omitempty" yaml:"status,omitempty"`
	Workflows  []core.WorkflowState  `json:"workflows" yaml:"workflows"`
	Drafts     drafts.Set            `json:"drafts" yaml:"drafts"`
	Campaigns  []core.CampaignRecord `json:"campaigns" yaml:"campaigns"`
	Activity   []ActivityItem        `json:"activity" yaml:"activity"`
}

// Snapshot returns copies of every piece of session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		TakenAt:    s.now(),
		View:       s.nav.Current(),
		SampleMode: s.SampleMode(),
		FocusSeed:  s.FocusSeed(),
		Workflows:  s.runner.States(),
		Drafts:     s.drafts.Snapshot(),
		Campaigns:  s.ledger.List(),
		Activity:   s.Activity(),
	}
	if st, ok := s.Status(); ok {
		snap.Status = &st
	}
	return snap
}

// Runner returns the workflow runner.
func (s *Session) Runner() *workflow.Runner { return s.runner }

// Drafts returns the draft store.
func (s *Session) Drafts() *drafts.Store { return s.drafts }

// Ledger returns the campaign ledger.
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// Navigation returns the view controller.
func (s *Session) Navigation() *navigation.Controller { return s.nav }

// Bus returns the session event bus.
func (s *Session) Bus() *events.EventBus { return s.bus }

// Shutdown waits for outstanding invocations to finish or ctx to end.
func (s *Session) Shutdown(ctx context.Context) error {
	if err := s.runner.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for workflows: %w", err)
	}
	return nil
}

// statusTap forwards events to the bus and remembers the last status line
// before it is published.
type statusTap struct {
	bus *events.EventBus

	mu     sync.Mutex
	status core.StatusMessage
	has    bool
}

func (t *statusTap) Publish(event events.Event) {
	t.record(event)
	t.bus.Publish(event)
}

func (t *statusTap) PublishPriority(event events.Event) {
	t.record(event)
	t.bus.PublishPriority(event)
}

func (t *statusTap) record(event events.Event) {
	st, ok := event.(events.StatusEvent)
	if !ok {
		return
	}
	t.mu.Lock()
	t.status = core.StatusMessage{Level: core.StatusLevel(st.Level), Text: st.Text}
	t.has = true
	t.mu.Unlock()
}

func (t *statusTap) last() (core.StatusMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status, t.has
}
