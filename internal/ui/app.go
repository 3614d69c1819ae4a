package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ToggleAxisMsg switches the splitter between horizontal and vertical (SPC o).
type ToggleAxisMsg struct{}

// FocusNextMsg moves keyboard focus to the next region (tab).
type FocusNextMsg struct{}

// QuitMsg turns off mouse reporting and quits the program.
type QuitMsg struct{}

// statusHeight is the number of rows below the splitter.
const statusHeight = 1

// AppModel is the root model: a Splitter filling the terminal above a
// one-line status bar. Keys not claimed by the keybind system go to the
// focused region.
type AppModel struct {
	Splitter   *Splitter
	Focus      *FocusManager
	KeyHandler *KeyHandler
	width      int
	height     int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Splitter.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Splitter.SetSize(msg.Width, max(msg.Height-statusHeight, 0))
		return a, nil
	case ToggleAxisMsg:
		a.Splitter.SetAxis(a.Splitter.Axis().Toggle())
		return a, nil
	case FocusNextMsg:
		a.Focus.Next()
		return a, nil
	case QuitMsg:
		return a, tea.Sequence(a.Splitter.Unmount(), tea.Quit)
	case tea.KeyMsg:
		if a.KeyHandler != nil {
			if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
				return a, cmd
			}
		}
		return a, a.Splitter.UpdateRegion(a.Focus.Current, msg)
	case tea.MouseMsg:
		a.focusAt(tea.MouseEvent(msg))
	}

	_, cmd := a.Splitter.Update(msg)
	return a, cmd
}

// focusAt focuses the region under a click.
func (a *appModelAdapter) focusAt(ev tea.MouseEvent) {
	if ev.Action != tea.MouseActionPress || ev.IsWheel() {
		return
	}
	w, h := a.width, max(a.height-statusHeight, 0)
	for _, p := range a.Splitter.Panels() {
		if p.Contains(w, h, ev.X, ev.Y) {
			a.Focus.SetFocus(p.ID)
			return
		}
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.Splitter.View() + "\n" + fitBlock(a.statusLine(), a.width, statusHeight)
}

func (a *AppModel) statusLine() string {
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		return RenderKeybindHelp(a.KeyHandler)
	}
	s := a.Splitter
	parts := []string{Styles.Status.Render(s.Axis().String())}
	if size, ok := s.Size(); ok {
		parts = append(parts, Styles.Status.Render(fmt.Sprintf("size %g (shown %g)", size, s.DisplayedSize())))
	} else {
		parts = append(parts, Styles.Hint.Render("size unset"))
	}
	parts = append(parts, Styles.Hint.Render("focus")+" "+Styles.Focused.Render(a.Focus.Current))
	if c := s.ActiveCursor(); c != "" {
		parts = append(parts, Styles.Dragging.Render("["+c+"]"))
	}
	if a.KeyHandler != nil {
		bindings := append(a.KeyHandler.Registry.Bindings(),
			key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "more")))
		parts = append(parts, newHelpModel().ShortHelpView(bindings))
	}
	return strings.Join(parts, "  ")
}

// NewAppModel creates the root application model around a splitter.
func NewAppModel(s *Splitter) *AppModel {
	quit := func() tea.Msg { return QuitMsg{} }
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", quit, "quit")
	reg.Bind("ctrl+c", quit)
	reg.BindWithDesc("tab", func() tea.Msg { return FocusNextMsg{} }, "focus")
	reg.BindWithDesc("SPC o", func() tea.Msg { return ToggleAxisMsg{} }, "toggle axis")
	reg.BindWithDesc("SPC q", quit, "quit")
	return &AppModel{
		Splitter:   s,
		Focus:      NewFocusManager(s),
		KeyHandler: NewKeyHandler(reg),
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Close releases region resources.
func (m *AppModel) Close() error {
	return m.Splitter.Close()
}
