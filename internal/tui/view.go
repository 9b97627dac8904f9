package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/devcontent/internal/clip"
	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/report"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
)

// logPanelLines is the number of log lines under the body.
const logPanelLines = 4

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderWorkflows(),
		m.renderStatus(),
		m.viewport.View(),
	}
	if m.editing != editNone {
		sections = append(sections, m.renderEditor())
	}
	sections = append(sections, m.renderLogs(), FooterStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// bodyHeight is the viewport height left after the fixed sections.
func (m Model) bodyHeight() int {
	fixed := 1 + 1 + 1 + logPanelLines + 2
	if m.help.ShowAll {
		fixed += 5
	}
	if h := m.height - fixed; h > 3 {
		return h
	}
	return 3
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(core.AllViews()))
	for i, v := range core.AllViews() {
		label := fmt.Sprintf("%d %s", i+1, v.Label())
		if v == m.snap.View {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	parts := []string{HeaderStyle.Render("devcontent"), lipgloss.JoinHorizontal(lipgloss.Top, tabs...)}
	if m.snap.SampleMode {
		parts = append(parts, SampleBadgeStyle.Render("SAMPLE"))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderWorkflows() string {
	cells := make([]string, 0, len(m.snap.Workflows))
	for _, st := range m.snap.Workflows {
		icon := m.phaseIcon(st)
		name := lipgloss.NewStyle().Foreground(KindColor(st.Kind)).Bold(true).Render(st.Kind.String())
		cell := fmt.Sprintf("%s %s %s", icon, name, PhaseStyle(st.Phase).Render(st.Phase.String()))
		if st.IsRunning() && st.StartedAt != nil {
			cell += MutedStyle.Render(" " + formatDuration(m.now().Sub(*st.StartedAt)))
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, "   ")
}

func (m Model) phaseIcon(st core.WorkflowState) string {
	switch st.Phase {
	case core.PhaseRunning:
		return m.spinner.View()
	case core.PhaseSucceeded:
		if st.Degraded {
			return WarnLogStyle.Render("◐")
		}
		return CompletedStyle.Render("●")
	case core.PhaseFailed:
		return FailedStyle.Render("✗")
	}
	return MutedStyle.Render("○")
}

func (m Model) renderStatus() string {
	if m.snap.Status == nil {
		return MutedStyle.Render("Ready.")
	}
	return StatusStyle(m.snap.Status.Level).Render(m.snap.Status.Text)
}

func (m Model) renderEditor() string {
	line := m.editor.View()
	if m.editing == editTweet {
		n := len([]rune(m.editor.Value()))
		counter := fmt.Sprintf(" %d/%d", n, drafts.TwitterLimit)
		if n > drafts.TwitterLimit {
			line += FailedStyle.Render(counter)
		} else {
			line += MutedStyle.Render(counter)
		}
	}
	return BoxStyle.Render(line)
}

func (m Model) renderLogs() string {
	start := len(m.logs) - logPanelLines
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, logPanelLines)
	for _, e := range m.logs[start:] {
		ts := MutedStyle.Render(e.Time.Format("15:04:05"))
		lines = append(lines, ts+" "+LogLevelStyle(e.Level).Render(e.Message))
	}
	for len(lines) < logPanelLines {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderBody renders the current view into the viewport content.
func (m Model) renderBody() string {
	switch m.snap.View {
	case core.ViewReview:
		return m.renderReview()
	case core.ViewAnalytics:
		return m.renderAnalytics()
	case core.ViewTrends:
		return m.renderTrends()
	default:
		return m.renderDashboard()
	}
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	in := m.generateInput()

	b.WriteString("## Content brief\n\n")
	fmt.Fprintf(&b, "- **Repository:** %s\n", orPlaceholder(in.Repo, "press e to set"))
	switch {
	case in.Focus == "" && m.snap.FocusSeed != "":
		fmt.Fprintf(&b, "- **Focus (from trend):** %s\n", m.snap.FocusSeed)
	case in.Focus != "":
		fmt.Fprintf(&b, "- **Focus:** %s\n", in.Focus)
	}
	b.WriteString("\n")

	if len(m.snap.Activity) > 0 {
		b.WriteString("## Recent activity\n\n")
		for _, a := range m.snap.Activity {
			fmt.Fprintf(&b, "- `%s` %s (%s, %s)\n", a.Type, a.Message, a.Author, a.Time)
		}
		b.WriteString("\n")
	}

	if st, ok := m.workflow(core.KindGenerate); ok && st.Result != nil {
		b.WriteString(report.ResultMarkdown(st))
	}
	return m.md.Render(b.String())
}

func (m Model) renderReview() string {
	if m.snap.Drafts == (drafts.Set{}) {
		return m.md.Render("## Review\n\n_No drafts yet. Generate content from the dashboard._\n")
	}

	targets := clip.Targets()
	tabs := make([]string, 0, len(targets))
	for i, t := range targets {
		if i == m.selected[core.ViewReview]%len(targets) {
			tabs = append(tabs, SelectedStyle.Render(" "+string(t)+" "))
		} else {
			tabs = append(tabs, MutedStyle.Render(" "+string(t)+" "))
		}
	}
	copyBar := "copy: " + strings.Join(tabs, "")

	var b strings.Builder
	b.WriteString(markdownBody(report.DraftsMarkdown(m.snap.Drafts)))
	fmt.Fprintf(&b, "\n## Delivery\n\n- **Recipient:** %s\n\n", orPlaceholder(m.deliverInput().Recipient, "press r to set"))
	if st, ok := m.workflow(core.KindDeliver); ok && st.Result != nil {
		b.WriteString(report.ResultMarkdown(st))
	}
	return copyBar + "\n" + m.md.Render(b.String())
}

func (m Model) renderAnalytics() string {
	var lines []string
	if len(m.snap.Campaigns) == 0 {
		lines = append(lines, MutedStyle.Render("No campaigns yet."))
	}
	for i, c := range m.snap.Campaigns {
		line := fmt.Sprintf("%-40s %-10s %-12s %s", truncate(c.Title, 40), c.Status, c.CreatedDate, strings.Join(c.Formats, ", "))
		if i == m.selected[core.ViewAnalytics] {
			lines = append(lines, SelectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	body := ""
	if st, ok := m.workflow(core.KindAnalyze); ok && st.Result != nil {
		body = m.md.Render(report.ResultMarkdown(st))
	}
	return strings.Join(lines, "\n") + "\n\n" + body
}

func (m Model) renderTrends() string {
	topics := m.trendTopics()
	if len(topics) == 0 {
		return m.md.Render("## Trends\n\n_No trends yet. Press t to scan._\n")
	}

	lines := make([]string, 0, len(topics))
	for i, t := range topics {
		line := fmt.Sprintf("%-36s %-14s %s", truncate(t.TrendName, 36), t.Momentum, t.Category)
		if i == m.selected[core.ViewTrends] {
			lines = append(lines, SelectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	st, _ := m.workflow(core.KindScan)
	return strings.Join(lines, "\n") + "\n\n" + m.md.Render(report.ResultMarkdown(st))
}

// markdownBody drops a leading frontmatter block, which the terminal
// renderer would show as a table.
func markdownBody(md string) string {
	if !strings.HasPrefix(md, "---\n") {
		return md
	}
	if end := strings.Index(md[4:], "\n---\n"); end >= 0 {
		return strings.TrimLeft(md[4+end+5:], "\n")
	}
	return md
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return "_" + placeholder + "_"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
