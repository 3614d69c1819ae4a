package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"panesplit/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// regionIDs numbers region views so messages from background goroutines
// reach the view that started them.
var regionIDs atomic.Int64

func nextRegionID() int64 {
	return regionIDs.Add(1)
}

// FileChangedMsg reports that a watched file was written, created or renamed.
type FileChangedMsg struct {
	ID int64
}

// TextView is a titled, scrollable region showing static text or the
// contents of a file. File views reload when the file changes.
type TextView struct {
	id       int64
	title    string
	content  string
	viewport viewport.Model

	path    string
	watcher *fsnotify.Watcher
	changes chan FileChangedMsg
	err     error
}

var (
	_ View         = (*TextView)(nil)
	_ Sizer        = (*TextView)(nil)
	_ NaturalSizer = (*TextView)(nil)
)

// NewTextView creates a region showing fixed content.
func NewTextView(title, content string) *TextView {
	v := &TextView{
		id:       nextRegionID(),
		title:    title,
		viewport: viewport.New(0, 0),
	}
	v.setContent(content)
	return v
}

// NewFileView creates a region showing the file at path and watches it for
// changes. The watcher is released by Close.
func NewFileView(path string) (*TextView, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	v := NewTextView(filepath.Base(abs), "")
	v.path = abs
	if err := v.reload(); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	v.watcher = w
	v.changes = make(chan FileChangedMsg, 1)
	go v.watch()
	return v, nil
}

func (v *TextView) watch() {
	defer close(v.changes)
	for {
		select {
		case ev, ok := <-v.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != v.path || !ev.Op.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			select {
			case v.changes <- FileChangedMsg{ID: v.id}:
			default:
				// A reload is already pending.
			}
		case _, ok := <-v.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (v *TextView) waitForChange() tea.Cmd {
	if v.changes == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-v.changes
		if !ok {
			return nil
		}
		return msg
	}
}

func (v *TextView) reload() error {
	data, err := os.ReadFile(v.path)
	if err != nil {
		v.err = fmt.Errorf("read %s: %w", v.path, err)
		return v.err
	}
	v.err = nil
	v.setContent(string(data))
	return nil
}

func (v *TextView) setContent(content string) {
	v.content = strings.ReplaceAll(content, "\r\n", "\n")
	v.viewport.SetContent(v.content)
}

// Init implements View.
func (v *TextView) Init() tea.Cmd {
	return v.waitForChange()
}

// Update implements View.
func (v *TextView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case FileChangedMsg:
		if msg.ID != v.id {
			return v, nil
		}
		// A failed reload keeps the last content and shows the error.
		_ = v.reload()
		return v, v.waitForChange()
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

// SetSize implements Sizer. One line is reserved for the title.
func (v *TextView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(height-1, 0)
}

// NaturalSize implements NaturalSizer.
func (v *TextView) NaturalSize(axis Axis) int {
	if axis == Vertical {
		return lipgloss.Height(v.content) + 1
	}
	return max(lipgloss.Width(v.content), lipgloss.Width(v.title))
}

// View implements View.
func (v *TextView) View() string {
	header := Styles.Title.Render(headerText(v.title, v.viewport.Width))
	if v.err != nil {
		header += " " + Styles.Error.Render(v.err.Error())
	}
	if v.viewport.Width == 0 && v.viewport.Height == 0 {
		return header + "\n" + v.content
	}
	return header + "\n" + v.viewport.View()
}

// headerText truncates a region title to width; zero means unsized.
func headerText(title string, width int) string {
	if width <= 0 {
		return title
	}
	return textutil.Truncate(title, width)
}

// Close stops watching the file.
func (v *TextView) Close() error {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Close()
}
