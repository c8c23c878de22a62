package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styleSet struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	rec      lipgloss.Style
	notice   lipgloss.Style
	errorMsg lipgloss.Style
}

const panelWidth = 40

func stylesFor(t Theme) styleSet {
	return styleSet{
		canvas:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary),
		panel:    lipgloss.NewStyle().Padding(0, 2).Width(panelWidth),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Secondary),
		help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		running:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		rec:      lipgloss.NewStyle().Foreground(t.Error).Bold(true).Blink(true),
		notice:   lipgloss.NewStyle().Foreground(t.Secondary),
		errorMsg: lipgloss.NewStyle().Foreground(t.Error),
	}
}

// Swatch renders a small block in the given colour.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}

// ProgressBar renders value/limit as a fixed-width bar.
func ProgressBar(value, limit float64, width int) string {
	ratio := 0.0
	if limit > 0 {
		ratio = value / limit
	}
	filled := int(ratio * float64(width))
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// formatRate prints small rates in scientific notation and others plainly.
func formatRate(v float64) string {
	if v != 0 && v < 0.01 {
		return fmt.Sprintf("%.1e", v)
	}
	return fmt.Sprintf("%.3g", v)
}
