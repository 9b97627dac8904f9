// Package tui provides the terminal console: a Bubble Tea program over one
// console session, plus a plain output fallback for non-interactive use.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber

	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	ColorText       = lipgloss.Color("#E5E7EB") // Light gray
	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Muted gray
	ColorBorder     = lipgloss.Color("#374151") // Dark gray
	ColorBackground = lipgloss.Color("#1F2937") // Dark background
	ColorHighlight  = lipgloss.Color("#374151") // Selection
)

var kindColors = map[core.WorkflowKind]lipgloss.Color{
	core.KindGenerate: lipgloss.Color("#8B5CF6"),
	core.KindDeliver:  lipgloss.Color("#10B981"),
	core.KindAnalyze:  lipgloss.Color("#3B82F6"),
	core.KindScan:     lipgloss.Color("#F59E0B"),
}

// KindColor returns the accent color of a workflow kind.
func KindColor(kind core.WorkflowKind) lipgloss.Color {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return ColorTextMuted
}
