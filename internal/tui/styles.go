package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

var (
	// HeaderStyle is the style for the title bar.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	// FooterStyle is the style for the key help line.
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	// BoxStyle is the style for containers.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	RunningStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	FailedStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// SampleBadgeStyle marks sample mode in the header.
	SampleBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	ErrorLogStyle = lipgloss.NewStyle().Foreground(ColorError)
	WarnLogStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoLogStyle  = lipgloss.NewStyle().Foreground(ColorInfo)
	DebugLogStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
)

// PhaseStyle returns the style of a phase label.
func PhaseStyle(p core.Phase) lipgloss.Style {
	switch p {
	case core.PhaseRunning:
		return RunningStyle
	case core.PhaseSucceeded:
		return CompletedStyle
	case core.PhaseFailed:
		return FailedStyle
	default:
		return MutedStyle
	}
}

// StatusStyle returns the style of the status line.
func StatusStyle(level core.StatusLevel) lipgloss.Style {
	switch level {
	case core.StatusLoading:
		return RunningStyle
	case core.StatusSuccess:
		return CompletedStyle
	case core.StatusError:
		return FailedStyle
	default:
		return MutedStyle
	}
}

// LogLevelStyle returns the style of a log line.
func LogLevelStyle(level string) lipgloss.Style {
	switch level {
	case "error":
		return ErrorLogStyle
	case "warn":
		return WarnLogStyle
	case "debug":
		return DebugLogStyle
	default:
		return InfoLogStyle
	}
}
