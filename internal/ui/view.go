package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Splitter regions are Views, and so is the Splitter itself.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Sizer is implemented by views that lay themselves out for a given size.
// The Splitter calls SetSize with the region's inner size after every
// layout change.
type Sizer interface {
	SetSize(width, height int)
}

// NaturalSizer is implemented by views that know their preferred extent along
// an axis. A first region without an explicit size renders at this extent.
type NaturalSizer interface {
	NaturalSize(axis Axis) int
}
