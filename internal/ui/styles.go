package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for the focused region, keys
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDivider   = "250" // Light gray - default divider line
)

// StyleHook customises a base style. A nil hook leaves the base unchanged.
type StyleHook func(lipgloss.Style) lipgloss.Style

func (h StyleHook) apply(base lipgloss.Style) lipgloss.Style {
	if h == nil {
		return base
	}
	return h(base)
}

// Styles contains shared style definitions used by the host views.
var Styles = struct {
	Title    lipgloss.Style // Bold accent color - region titles
	Status   lipgloss.Style // Status line text
	Key      lipgloss.Style // Key names in hints
	Hint     lipgloss.Style // Help/hint text (muted color)
	Focused  lipgloss.Style // Marker for the focused region
	Dragging lipgloss.Style // Status while a drag is active
	Error    lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Key: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Focused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Dragging: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
}

// fitBlock pads or trims content to exactly width x height cells.
// ANSI sequences are preserved.
func fitBlock(content string, width, height int) string {
	if height <= 0 {
		return ""
	}
	if width < 0 {
		width = 0
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = padToWidth(ansi.Truncate(line, width, ""), width)
	}
	return strings.Join(lines, "\n")
}

// padToWidth pads a string with spaces to reach the target width.
func padToWidth(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
