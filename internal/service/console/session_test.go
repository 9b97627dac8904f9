package console

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
	"github.com/hugo-lorenzo-mato/devcontent/internal/testutil"
)

const waitTimeout = 2 * time.Second

var fixedNow = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T) (*Session, *testutil.MockInvoker) {
	t.Helper()
	inv := testutil.NewMockInvoker()
	bus := events.New(256)
	t.Cleanup(bus.Close)
	s, err := NewSession(SessionDeps{
		Invoker: inv,
		Bus:     bus,
		Clock:   func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return s, inv
}

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}

func state(t *testing.T, s *Session, kind core.WorkflowKind) core.WorkflowState {
	t.Helper()
	st, ok := s.Runner().State(kind)
	require.True(t, ok)
	return st
}

func TestSession_GenerateSuccessWiresStores(t *testing.T) {
	s, inv := newTestSession(t)
	artifact := testutil.NewTestArtifact()
	inv.Succeed(core.DefaultGenerateAgentID, artifact)

	_, err := s.Generate(context.Background(), core.GenerateInput{Repo: " acme/widgets "})
	require.NoError(t, err)
	waitIdle(t, s)

	assert.Equal(t, core.PhaseSucceeded, state(t, s, core.KindGenerate).Phase)
	assert.Equal(t, drafts.FromArtifact(artifact), s.Drafts().Snapshot())
	assert.Equal(t, core.ViewReview, s.Navigation().Current())

	campaigns := s.Ledger().List()
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Inside Release 2.0", campaigns[0].Title)
	assert.Equal(t, "acme/widgets", campaigns[0].SourceRepo)
	assert.Equal(t, core.CampaignDraft, campaigns[0].Status)
	assert.Equal(t, "2026-02-14", campaigns[0].CreatedDate)

	st, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, core.StatusSuccess, st.Level)
	assert.Equal(t, core.StatusText(core.KindGenerate).Success, st.Text)
}

func TestSession_DeliverCopiesEmailDraftAndMarksSent(t *testing.T) {
	s, inv := newTestSession(t)
	inv.Succeed(core.DefaultGenerateAgentID, testutil.NewTestArtifact())
	inv.Succeed(core.DefaultDeliverAgentID, map[string]any{"delivery_summary": "sent"})

	_, err := s.Generate(context.Background(), core.GenerateInput{Repo: "acme/widgets"})
	require.NoError(t, err)
	waitIdle(t, s)

	email := s.Drafts().Email()
	email.Subject = "Edited subject"
	email.Body = "Edited body"
	s.Drafts().UpdateEmail(email)

	_, err = s.Deliver(context.Background(), core.DeliverInput{Recipient: "team@example.com", Subject: "ignored"})
	require.NoError(t, err)
	waitIdle(t, s)

	calls := inv.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[1].Message, "Subject: Edited subject")
	assert.Contains(t, calls[1].Message, "Body: Edited body")
	assert.NotContains(t, calls[1].Message, "ignored")

	campaigns := s.Ledger().List()
	require.Len(t, campaigns, 1)
	assert.Equal(t, core.CampaignSent, campaigns[0].Status)
	assert.Equal(t, core.ViewReview, s.Navigation().Current(), "deliver does not navigate")
}

func TestSession_DeliverWithEmptyLedgerIsNoop(t *testing.T) {
	s, inv := newTestSession(t)
	inv.Succeed(core.DefaultDeliverAgentID, map[string]any{"delivery_summary": "sent"})

	_, err := s.Deliver(context.Background(), core.DeliverInput{Recipient: "team@example.com"})
	require.NoError(t, err)
	waitIdle(t, s)

	assert.Equal(t, core.PhaseSucceeded, state(t, s, core.KindDeliver).Phase)
	assert.Zero(t, s.Ledger().Len())
}

func TestSession_FailedGenerateKeepsDrafts(t *testing.T) {
	s, inv := newTestSession(t)
	artifact := testutil.NewTestArtifact()
	inv.Succeed(core.DefaultGenerateAgentID, artifact)
	inv.Fail(core.DefaultGenerateAgentID, "rate limited")

	_, err := s.Generate(context.Background(), core.GenerateInput{Repo: "acme/widgets"})
	require.NoError(t, err)
	waitIdle(t, s)
	s.Navigation().Select(core.ViewAnalytics)

	_, err = s.Generate(context.Background(), core.GenerateInput{Repo: "acme/widgets"})
	require.NoError(t, err)
	waitIdle(t, s)

	st := state(t, s, core.KindGenerate)
	assert.Equal(t, core.PhaseFailed, st.Phase)
	assert.Equal(t, "rate limited", st.LastError)
	assert.Equal(t, drafts.FromArtifact(artifact), s.Drafts().Snapshot())
	assert.Equal(t, 1, s.Ledger().Len())
	assert.Equal(t, core.ViewAnalytics, s.Navigation().Current())
}

func TestSession_ValidationSetsStatus(t *testing.T) {
	s, inv := newTestSession(t)

	_, err := s.Analyze(context.Background(), core.AnalyzeInput{})
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatValidation))
	assert.Zero(t, inv.CallCount(core.DefaultAnalyzeAgentID))

	st, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, core.StatusMessage{Level: core.StatusError, Text: "Please enter a campaign name"}, st)
}

func TestSession_ApplyTrendSeedsNextGenerate(t *testing.T) {
	s, inv := newTestSession(t)
	inv.Succeed(core.DefaultGenerateAgentID, testutil.NewTestArtifact())
	s.Navigation().Select(core.ViewTrends)

	focus := s.ApplyTrend("AI Code Agents", "Compare agents")
	assert.Equal(t, "Trending topic: AI Code Agents. Content angle: Compare agents", focus)
	assert.Equal(t, core.ViewDashboard, s.Navigation().Current())
	assert.Equal(t, focus, s.Presets().Generate.Focus)

	st, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, core.StatusSuccess, st.Level)
	assert.Equal(t, core.TrendAppliedText("AI Code Agents"), st.Text)
	assert.Zero(t, inv.CallCount(core.DefaultGenerateAgentID))

	_, err := s.Generate(context.Background(), core.GenerateInput{Repo: "acme/widgets"})
	require.NoError(t, err)
	waitIdle(t, s)

	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.True(t, strings.HasSuffix(calls[0].Message, "Focus on: "+focus))
	assert.Empty(t, s.FocusSeed(), "seed is consumed by the accepted start")
}

func TestSession_ExplicitFocusKeepsSeed(t *testing.T) {
	s, inv := newTestSession(t)
	inv.Succeed(core.DefaultGenerateAgentID, testutil.NewTestArtifact())
	focus := s.ApplyTrend("Bun 2.0", "Benchmarks")

	_, err := s.Generate(context.Background(), core.GenerateInput{Repo: "acme/widgets", Focus: "plugins"})
	require.NoError(t, err)
	waitIdle(t, s)

	assert.Contains(t, inv.Calls()[0].Message, "Focus on: plugins")
	assert.Equal(t, focus, s.FocusSeed())
}

func TestSession_RejectedGenerateKeepsSeed(t *testing.T) {
	s, _ := newTestSession(t)
	focus := s.ApplyTrend("Bun 2.0", "Benchmarks")

	_, err := s.Generate(context.Background(), core.GenerateInput{})
	require.Error(t, err)
	assert.Equal(t, focus, s.FocusSeed())
}

func TestSession_SampleModeOnOff(t *testing.T) {
	s, _ := newTestSession(t)
	sd, err := LoadSampleData()
	require.NoError(t, err)

	s.SetSampleMode(true)
	assert.True(t, s.SampleMode())
	for _, st := range s.Runner().States() {
		assert.Equal(t, core.PhaseSucceeded, st.Phase, st.Kind)
		assert.NotNil(t, st.Result, st.Kind)
	}
	trends, ok := state(t, s, core.KindScan).Trends()
	require.True(t, ok)
	assert.Equal(t, "2026-02-14T09:30:00Z", trends.ScanTimestamp)
	assert.Equal(t, drafts.FromArtifact(sd.Content), s.Drafts().Snapshot())
	assert.Len(t, s.Ledger().List(), 3)
	assert.Len(t, s.Activity(), 6)
	assert.Equal(t, "facebook/react", s.Presets().Generate.Repo)

	s.SetSampleMode(false)
	assert.False(t, s.SampleMode())
	for _, st := range s.Runner().States() {
		assert.Equal(t, core.PhaseIdle, st.Phase, st.Kind)
		assert.Nil(t, st.Result, st.Kind)
	}
	assert.Equal(t, drafts.Set{}, s.Drafts().Snapshot())
	assert.Zero(t, s.Ledger().Len())
	assert.Empty(t, s.Activity())
	assert.Equal(t, EmptyPresets(), s.Presets())
	assert.Equal(t, core.DefaultCalendar, s.Presets().Deliver.Calendar)
}

func TestSession_SampleModeDiscardsInFlight(t *testing.T) {
	s, inv := newTestSession(t)
	inv.Block(core.DefaultScanAgentID)
	inv.Succeed(core.DefaultScanAgentID, testutil.NewTestTrends())
	sub := s.Bus().Subscribe(events.TypeWorkflowDiscarded)

	_, err := s.Scan(context.Background(), core.ScanInput{})
	require.NoError(t, err)
	testutil.WaitEntered(t, inv, core.DefaultScanAgentID, waitTimeout)

	s.SetSampleMode(true)
	s.SetSampleMode(false)
	inv.Release(core.DefaultScanAgentID)
	waitIdle(t, s)

	testutil.WaitForEvent(t, sub, events.TypeWorkflowDiscarded, waitTimeout)
	st := state(t, s, core.KindScan)
	assert.Equal(t, core.PhaseIdle, st.Phase)
	assert.Nil(t, st.Result)
}

func TestSession_SampleModeSameValueIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	sub := s.Bus().Subscribe(events.TypeSampleMode)

	s.SetSampleMode(false)
	assert.Empty(t, testutil.Drain(sub))

	s.SetSampleMode(true)
	edited := s.Drafts().Email()
	edited.Subject = "kept"
	s.Drafts().UpdateEmail(edited)
	s.SetSampleMode(true)
	assert.Equal(t, "kept", s.Drafts().Email().Subject)
	assert.Len(t, testutil.Drain(sub), 1)
}

func TestSession_StartDispatch(t *testing.T) {
	s, inv := newTestSession(t)
	inv.Succeed(core.DefaultDeliverAgentID, map[string]any{"delivery_summary": "ok"})
	s.Drafts().UpdateEmail(drafts.EditableEmail{Subject: "From drafts", Body: "Draft body"})

	_, err := s.Start(context.Background(), &core.DeliverInput{Recipient: "team@example.com"})
	require.NoError(t, err)
	waitIdle(t, s)

	assert.Contains(t, inv.Calls()[0].Message, "Subject: From drafts")
}

func TestSession_Snapshot(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetSampleMode(true)
	s.ApplyTrend("AI Code Agents", "Compare")

	snap := s.Snapshot()
	assert.Equal(t, fixedNow, snap.TakenAt)
	assert.True(t, snap.SampleMode)
	assert.Equal(t, core.ViewDashboard, snap.View)
	assert.NotEmpty(t, snap.FocusSeed)
	require.NotNil(t, snap.Status)
	assert.Equal(t, core.StatusSuccess, snap.Status.Level)
	assert.Len(t, snap.Workflows, 4)
	assert.Len(t, snap.Campaigns, 3)
	assert.Equal(t, "React v4.2.0 Launch Campaign", snap.Campaigns[0].Title)
}

func TestSession_Agents(t *testing.T) {
	s, _ := newTestSession(t)
	agents := s.Agents()
	require.Len(t, agents, 4)
	assert.Equal(t, core.DefaultGenerateAgentID, agents[0].ID)
}
