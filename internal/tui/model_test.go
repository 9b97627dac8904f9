package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
	"github.com/hugo-lorenzo-mato/devcontent/internal/testutil"
)

type stubCopier struct {
	target clip.Target
	err    error
}

func (c *stubCopier) CopyDraft(set drafts.Set, target clip.Target) (clip.Result, error) {
	c.target = target
	if c.err != nil {
		return clip.Result{}, c.err
	}
	return clip.Result{Method: clip.MethodNative, Target: target, Bytes: len(target.Text(set))}, nil
}

func newTestModel(t *testing.T, opts ...Option) (Model, *console.Session, *testutil.MockInvoker) {
	t.Helper()
	inv := testutil.NewMockInvoker()
	bus := events.New(256)
	t.Cleanup(bus.Close)
	s, err := console.NewSession(console.SessionDeps{Invoker: inv, Bus: bus})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	m := New(context.Background(), s, opts...)
	t.Cleanup(m.Close)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), s, inv
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command once, feeding its
// message back into the model.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	updated, cmd := m.Update(k)
	m = updated.(Model)
	// Editor commands only drive the cursor blink.
	if cmd == nil || m.editing != editNone {
		return m
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(actionMsg); ok {
			updated, _ = m.Update(msg)
			m = updated.(Model)
		}
		if _, ok := msg.(CopiedMsg); ok {
			updated, _ = m.Update(msg)
			m = updated.(Model)
		}
	}
	return m
}

func TestModel_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.True(t, m.ready)
	out := m.View()
	assert.Contains(t, out, "devcontent")
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "Ready.")
	assert.NotContains(t, out, "SAMPLE")
}

func TestModel_NotReadyBeforeSize(t *testing.T) {
	inv := testutil.NewMockInvoker()
	s, err := console.NewSession(console.SessionDeps{Invoker: inv})
	require.NoError(t, err)
	m := New(context.Background(), s)
	defer m.Close()

	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_SelectViews(t *testing.T) {
	m, s, _ := newTestModel(t)

	m = press(t, m, runes("3"))
	assert.Equal(t, core.ViewAnalytics, s.Navigation().Current())
	assert.Equal(t, core.ViewAnalytics, m.snap.View)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, core.ViewTrends, s.Navigation().Current())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, core.ViewDashboard, s.Navigation().Current())

	press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, core.ViewTrends, s.Navigation().Current())
}

func TestModel_SampleToggle(t *testing.T) {
	m, s, _ := newTestModel(t)

	m = press(t, m, runes("s"))
	require.True(t, s.SampleMode())
	assert.Contains(t, m.View(), "SAMPLE")
	assert.NotEmpty(t, m.snap.Campaigns)

	m = press(t, m, runes("s"))
	assert.False(t, s.SampleMode())
	assert.Empty(t, m.snap.Campaigns)
}

func TestModel_GenerateWithoutRepositoryLogsWarning(t *testing.T) {
	m, _, inv := newTestModel(t)

	m = press(t, m, runes("g"))

	require.NotEmpty(t, m.logs)
	last := m.logs[len(m.logs)-1]
	assert.Equal(t, "warn", last.Level)
	assert.Contains(t, last.Message, "start generate")
	assert.Equal(t, 0, inv.CallCount(core.DefaultGenerateAgentID))
}

func TestModel_EditRepositoryThenGenerate(t *testing.T) {
	m, s, inv := newTestModel(t)
	inv.Succeed(core.DefaultGenerateAgentID, testutil.NewTestArtifact())

	m = press(t, m, runes("e"))
	require.Equal(t, editRepo, m.editing)
	m = press(t, m, runes("acme/widgets"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, editNone, m.editing)
	assert.Equal(t, "acme/widgets", m.repo)

	press(t, m, runes("g"))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Runner().Wait(ctx))

	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Message, "acme/widgets")
	assert.Equal(t, "Release 2.0 is here", s.Drafts().Email().Subject)
}

func TestModel_EditCancel(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, runes("r"))
	require.Equal(t, editRecipient, m.editing)
	assert.Contains(t, m.View(), "Recipient:")
	m = press(t, m, runes("someone@example.com"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, editNone, m.editing)
	assert.Empty(t, m.recipient)
}

func TestModel_EditTweetUpdatesDrafts(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = press(t, m, runes("s"))
	m = press(t, m, runes("2"))

	m = press(t, m, runes("e"))
	require.Equal(t, editTweet, m.editing)
	m.editor.SetValue("Shipped!")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Shipped!", s.Drafts().Social().Twitter)
	assert.Equal(t, "Shipped!", m.snap.Drafts.Social.Twitter)
}

func TestModel_CopySelectedTarget(t *testing.T) {
	copier := &stubCopier{}
	m, _, _ := newTestModel(t, WithCopier(copier))
	m = press(t, m, runes("s"))

	m = press(t, m, runes("c"))
	assert.Equal(t, clip.TargetEmail, copier.target)

	m = press(t, m, runes("2"))
	m = press(t, m, runes("j"))
	m = press(t, m, runes("c"))
	assert.Equal(t, clip.TargetTwitter, copier.target)
	assert.Contains(t, m.logs[len(m.logs)-1].Message, "copied twitter")
}

func TestModel_CopyFailureLogged(t *testing.T) {
	copier := &stubCopier{err: errors.New("no clipboard")}
	m, _, _ := newTestModel(t, WithCopier(copier))

	m = press(t, m, runes("c"))
	last := m.logs[len(m.logs)-1]
	assert.Equal(t, "warn", last.Level)
	assert.Contains(t, last.Message, "no clipboard")
}

func TestModel_ApplyTrend(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = press(t, m, runes("s"))
	m = press(t, m, runes("4"))

	topics := m.trendTopics()
	require.GreaterOrEqual(t, len(topics), 2)
	assert.Contains(t, m.renderBody(), "> "+topics[0].TrendName)

	m = press(t, m, runes("j"))
	assert.Equal(t, 1, m.selected[core.ViewTrends])
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, core.FocusSeed(topics[1].TrendName, topics[1].ContentAngle), s.FocusSeed())
	assert.Equal(t, core.ViewDashboard, s.Navigation().Current())
	assert.Contains(t, m.View(), core.TrendAppliedText(topics[1].TrendName))
}

func TestModel_GenerateConsumesTrendFocus(t *testing.T) {
	m, s, inv := newTestModel(t)
	inv.Succeed(core.DefaultGenerateAgentID, testutil.NewTestArtifact())
	m = press(t, m, runes("s"))
	m = press(t, m, runes("4"))
	topics := m.trendTopics()
	require.NotEmpty(t, topics)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	seed := core.FocusSeed(topics[0].TrendName, topics[0].ContentAngle)
	require.Equal(t, seed, s.FocusSeed())
	assert.Contains(t, m.renderBody(), "Focus (from trend):")

	press(t, m, runes("g"))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Runner().Wait(ctx))

	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Message, "Focus on: "+seed)
	assert.Empty(t, s.FocusSeed(), "generate from the console consumes the seed")
}

func TestModel_SelectionWraps(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("s"))
	m = press(t, m, runes("3"))

	n := len(m.snap.Campaigns)
	require.Positive(t, n)
	m = press(t, m, runes("k"))
	assert.Equal(t, n-1, m.selected[core.ViewAnalytics])

	c, ok := m.selectedCampaign()
	require.True(t, ok)
	assert.Equal(t, c.Title, m.analyzeInput().CampaignName)
}

func TestModel_WorkflowMessagesLogged(t *testing.T) {
	m, _, _ := newTestModel(t)

	updated, cmd := m.Update(WorkflowMsg{Type: events.TypeWorkflowSucceeded, Kind: core.KindScan, Duration: 1500 * time.Millisecond})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "scan succeeded in 1.5s", m.logs[len(m.logs)-1].Message)
}

func TestModel_LogBufferBounded(t *testing.T) {
	m, _, _ := newTestModel(t)
	for i := 0; i < maxLogEntries+20; i++ {
		updated, _ := m.Update(LogMsg{Time: time.Now(), Level: "info", Message: "line"})
		m = updated.(Model)
	}
	assert.Len(t, m.logs, maxLogEntries)
}

func TestModel_HelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	short := m.View()
	m = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.NotEqual(t, short, m.View())
	assert.True(t, strings.Contains(m.View(), "recipient"))
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
