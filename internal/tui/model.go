package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
)

const maxLogEntries = 100

// Copier copies a draft out of the console.
type Copier interface {
	CopyDraft(set drafts.Set, target clip.Target) (clip.Result, error)
}

// LogEntry represents a log line.
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
}

// editField names the value the line editor is bound to.
type editField int

const (
	editNone editField = iota
	editRepo
	editRecipient
	editTweet
)

func (f editField) prompt() string {
	switch f {
	case editRepo:
		return "Repository: "
	case editRecipient:
		return "Recipient: "
	case editTweet:
		return "Tweet: "
	}
	return ""
}

// actionMsg reports the outcome of a session call made off the update loop.
type actionMsg struct {
	action string
	err    error
}

// Model is the main TUI model.
type Model struct {
	ctx     context.Context
	session *console.Session
	adapter *EventBusAdapter
	logCh   <-chan tea.Msg
	copier  Copier
	now     func() time.Time

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	editor   textinput.Model
	md       *markdownRenderer

	snap     console.Snapshot
	logs     []LogEntry
	editing  editField
	selected map[core.View]int

	// Operator overrides of the preset forms. Cleared when the session is
	// replaced by a sample mode switch.
	repo      string
	recipient string

	width  int
	height int
	ready  bool
}

// Option configures a Model.
type Option func(*Model)

// WithCopier sets the copier used by the copy key.
func WithCopier(c Copier) Option {
	return func(m *Model) { m.copier = c }
}

// WithLogMessages feeds log entries into the log panel.
func WithLogMessages(ch <-chan tea.Msg) Option {
	return func(m *Model) { m.logCh = ch }
}

// New creates a model over session. Close releases its bus subscriptions.
func New(ctx context.Context, session *console.Session, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = RunningStyle

	ed := textinput.New()
	ed.CharLimit = 2000

	m := Model{
		ctx:      ctx,
		session:  session,
		adapter:  NewEventBusAdapter(session.Bus()),
		now:      time.Now,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		viewport: viewport.New(80, 20),
		editor:   ed,
		md:       newMarkdownRenderer(80),
		logs:     make([]LogEntry, 0),
		selected: make(map[core.View]int),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Close unsubscribes the model from the session bus.
func (m Model) Close() {
	m.adapter.Close()
}

// Run runs the console until the operator quits or ctx ends.
func Run(ctx context.Context, session *console.Session, opts ...Option) error {
	m := New(ctx, session, opts...)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		durationTick(),
		waitForMsg(m.adapter.MsgChannel()),
		waitForMsg(m.logCh),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing != editNone {
			return m.handleEditKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
		m.md = newMarkdownRenderer(msg.Width - 4)
		m.refresh()
		return m, nil

	case StatusMsg:
		m.refresh()
		return m, waitForMsg(m.adapter.MsgChannel())

	case WorkflowMsg:
		level, text := msg.logLine()
		m.addLog(level, text)
		m.refresh()
		return m, waitForMsg(m.adapter.MsgChannel())

	case SessionMsg:
		if msg.Type == events.TypeSampleMode {
			m.repo, m.recipient = "", ""
			m.selected = make(map[core.View]int)
		}
		m.refresh()
		return m, waitForMsg(m.adapter.MsgChannel())

	case LogMsg:
		m.addLogEntry(LogEntry(msg))
		return m, waitForMsg(m.logCh)

	case actionMsg:
		if msg.err != nil {
			m.addLog("warn", fmt.Sprintf("%s: %s", msg.action, core.UserMessage(msg.err, msg.err.Error())))
		}
		m.refresh()
		return m, nil

	case CopiedMsg:
		m.addCopyLog(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DurationTickMsg:
		return m, durationTick()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.snap.View

	for i, b := range m.keys.Views {
		if key.Matches(msg, b) {
			return m, m.selectCmd(core.AllViews()[i])
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		return m, m.selectCmd(m.shiftView(1))

	case key.Matches(msg, m.keys.PrevView):
		return m, m.selectCmd(m.shiftView(-1))

	case key.Matches(msg, m.keys.Sample):
		on := !m.snap.SampleMode
		session := m.session
		return m, func() tea.Msg {
			session.SetSampleMode(on)
			return actionMsg{action: "sample mode"}
		}

	case key.Matches(msg, m.keys.Generate):
		return m, m.startCmd(core.KindGenerate)
	case key.Matches(msg, m.keys.Deliver):
		return m, m.startCmd(core.KindDeliver)
	case key.Matches(msg, m.keys.Analyze):
		return m, m.startCmd(core.KindAnalyze)
	case key.Matches(msg, m.keys.Scan):
		return m, m.startCmd(core.KindScan)

	case key.Matches(msg, m.keys.Edit):
		switch view {
		case core.ViewDashboard:
			return m.beginEdit(editRepo, m.generateInput().Repo)
		case core.ViewReview:
			return m.beginEdit(editTweet, m.snap.Drafts.Social.Twitter)
		}
		return m, nil

	case key.Matches(msg, m.keys.Recipient):
		return m.beginEdit(editRecipient, m.deliverInput().Recipient)

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd(m.copyTarget())

	case key.Matches(msg, m.keys.Up):
		if m.selectable(view) > 0 {
			m.moveSelection(view, -1)
			m.refresh()
			return m, nil
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectable(view) > 0 {
			m.moveSelection(view, 1)
			m.refresh()
			return m, nil
		}

	case key.Matches(msg, m.keys.Apply):
		if view == core.ViewTrends {
			if topic, ok := m.selectedTopic(); ok {
				session := m.session
				return m, func() tea.Msg {
					session.ApplyTrend(topic.TrendName, topic.ContentAngle)
					return actionMsg{action: "apply trend"}
				}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) beginEdit(field editField, value string) (tea.Model, tea.Cmd) {
	m.editing = field
	m.editor.Prompt = field.prompt()
	m.editor.SetValue(value)
	m.editor.CursorEnd()
	cmd := m.editor.Focus()
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = editNone
		m.editor.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.editor.Value()
		field := m.editing
		m.editing = editNone
		m.editor.Blur()
		switch field {
		case editRepo:
			m.repo = strings.TrimSpace(value)
		case editRecipient:
			m.recipient = strings.TrimSpace(value)
		case editTweet:
			social := m.snap.Drafts.Social
			social.Twitter = value
			m.session.Drafts().UpdateSocial(social)
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) selectCmd(view core.View) tea.Cmd {
	nav := m.session.Navigation()
	return func() tea.Msg {
		nav.Select(view)
		return actionMsg{action: "select view"}
	}
}

func (m Model) shiftView(delta int) core.View {
	views := core.AllViews()
	for i, v := range views {
		if v == m.snap.View {
			return views[(i+delta+len(views))%len(views)]
		}
	}
	return core.ViewDashboard
}

// startCmd starts kind with the preset form and the operator's overrides.
func (m Model) startCmd(kind core.WorkflowKind) tea.Cmd {
	session, ctx := m.session, m.ctx
	var start func() error
	switch kind {
	case core.KindGenerate:
		in := m.generateInput()
		start = func() error { _, err := session.Generate(ctx, in); return err }
	case core.KindDeliver:
		in := m.deliverInput()
		start = func() error { _, err := session.Deliver(ctx, in); return err }
	case core.KindAnalyze:
		in := m.analyzeInput()
		start = func() error { _, err := session.Analyze(ctx, in); return err }
	case core.KindScan:
		in := session.Presets().Scan
		start = func() error { _, err := session.Scan(ctx, in); return err }
	default:
		return nil
	}
	return func() tea.Msg {
		return actionMsg{action: "start " + kind.String(), err: start()}
	}
}

// generateInput leaves a seeded focus blank so that the session fills it
// and consumes the seed on start.
func (m Model) generateInput() core.GenerateInput {
	in := m.session.Presets().Generate
	if m.repo != "" {
		in.Repo = m.repo
	}
	if seed := m.session.FocusSeed(); seed != "" && in.Focus == seed {
		in.Focus = ""
	}
	return in
}

func (m Model) deliverInput() core.DeliverInput {
	in := m.session.Presets().Deliver
	if m.recipient != "" {
		in.Recipient = m.recipient
	}
	return in
}

// analyzeInput targets the campaign selected in the analytics view.
func (m Model) analyzeInput() core.AnalyzeInput {
	in := m.session.Presets().Analyze
	if m.snap.View != core.ViewAnalytics {
		return in
	}
	if c, ok := m.selectedCampaign(); ok {
		in.CampaignName = c.Title
	}
	return in
}

func (m Model) copyCmd(target clip.Target) tea.Cmd {
	if m.copier == nil {
		return nil
	}
	copier, set := m.copier, m.snap.Drafts
	return func() tea.Msg {
		res, err := copier.CopyDraft(set, target)
		if err != nil {
			return CopiedMsg{Result: clip.Result{Target: target}, Err: err}
		}
		return CopiedMsg{Result: res}
	}
}

// copyTarget is the draft selected in the review view, or the email
// elsewhere.
func (m Model) copyTarget() clip.Target {
	if m.snap.View != core.ViewReview {
		return clip.TargetEmail
	}
	targets := clip.Targets()
	return targets[m.selected[core.ViewReview]%len(targets)]
}

func (m *Model) addCopyLog(msg CopiedMsg) {
	if msg.Err != nil {
		m.addLog("warn", fmt.Sprintf("copy %s: %v", msg.Result.Target, msg.Err))
		return
	}
	text := fmt.Sprintf("copied %s (%d bytes, %s)", msg.Result.Target, msg.Result.Bytes, msg.Result.Method)
	if msg.Result.FilePath != "" {
		text += " to " + msg.Result.FilePath
	}
	m.addLog("info", text)
}

// selectable returns how many items the view lets the operator pick from.
func (m Model) selectable(view core.View) int {
	switch view {
	case core.ViewReview:
		return len(clip.Targets())
	case core.ViewAnalytics:
		return len(m.snap.Campaigns)
	case core.ViewTrends:
		return len(m.trendTopics())
	}
	return 0
}

func (m *Model) moveSelection(view core.View, delta int) {
	n := m.selectable(view)
	if n == 0 {
		return
	}
	m.selected[view] = (m.selected[view] + delta + n) % n
}

func (m Model) selectedCampaign() (core.CampaignRecord, bool) {
	if len(m.snap.Campaigns) == 0 {
		return core.CampaignRecord{}, false
	}
	return m.snap.Campaigns[m.selected[core.ViewAnalytics]%len(m.snap.Campaigns)], true
}

func (m Model) trendTopics() []core.TrendingTopic {
	st, ok := m.workflow(core.KindScan)
	if !ok {
		return nil
	}
	t, ok := st.Trends()
	if !ok {
		return nil
	}
	return t.TrendingTopics
}

func (m Model) selectedTopic() (core.TrendingTopic, bool) {
	topics := m.trendTopics()
	if len(topics) == 0 {
		return core.TrendingTopic{}, false
	}
	return topics[m.selected[core.ViewTrends]%len(topics)], true
}

func (m Model) workflow(kind core.WorkflowKind) (core.WorkflowState, bool) {
	for _, st := range m.snap.Workflows {
		if st.Kind == kind {
			return st, true
		}
	}
	return core.WorkflowState{}, false
}

// refresh re-reads the session and rebuilds the body.
func (m *Model) refresh() {
	m.snap = m.session.Snapshot()
	for view := range m.selected {
		if n := m.selectable(view); n == 0 || m.selected[view] >= n {
			m.selected[view] = 0
		}
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderBody())
	m.viewport.SetYOffset(offset)
}

func (m *Model) addLog(level, text string) {
	m.addLogEntry(LogEntry{Time: m.now(), Level: level, Message: text})
}

func (m *Model) addLogEntry(e LogEntry) {
	m.logs = append(m.logs, e)
	if len(m.logs) > maxLogEntries {
		m.logs = m.logs[len(m.logs)-maxLogEntries:]
	}
}
