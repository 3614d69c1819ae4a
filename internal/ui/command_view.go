package ui

import (
	"bytes"
	"io"
	"os/exec"
	"strings"

	"panesplit/internal/pty"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandOutputMsg carries bytes read from a command's PTY.
type CommandOutputMsg struct {
	ID   int64
	Data []byte
}

// CommandExitMsg is sent once a command's PTY reaches EOF.
type CommandExitMsg struct {
	ID int64
}

// CommandView is a region that runs a shell command in a PTY and shows its
// output in a viewport. The PTY follows the region's size.
type CommandView struct {
	id       int64
	command  string
	runner   pty.Runner
	ptmx     io.ReadWriteCloser
	content  *bytes.Buffer
	viewport viewport.Model
	size     pty.Size
	outputCh chan []byte
	exited   bool
	err      error
}

var (
	_ View  = (*CommandView)(nil)
	_ Sizer = (*CommandView)(nil)
)

const (
	defaultCommandWidth  = 80
	defaultCommandHeight = 24
)

// NewCommandView creates a region for command. The command starts on Init.
func NewCommandView(runner pty.Runner, command string) *CommandView {
	return &CommandView{
		id:       nextRegionID(),
		command:  command,
		runner:   runner,
		content:  &bytes.Buffer{},
		viewport: viewport.New(0, 0),
		size:     pty.SizeFor(defaultCommandWidth, defaultCommandHeight),
		outputCh: make(chan []byte, 64),
	}
}

// Init implements View. Spawns the command and starts reading from the PTY.
func (c *CommandView) Init() tea.Cmd {
	shell := "sh"
	if path, err := exec.LookPath("bash"); err == nil {
		shell = path
	}
	ptmx, err := c.runner.Start(exec.Command(shell, "-c", c.command), c.size)
	if err != nil {
		c.err = err
		c.exited = true
		return nil
	}
	c.ptmx = ptmx

	go func() {
		defer close(c.outputCh)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				c.outputCh <- bytes.Clone(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	return c.waitForOutput()
}

func (c *CommandView) waitForOutput() tea.Cmd {
	return func() tea.Msg {
		data, ok := <-c.outputCh
		if !ok {
			return CommandExitMsg{ID: c.id}
		}
		return CommandOutputMsg{ID: c.id, Data: data}
	}
}

// Update implements View.
func (c *CommandView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case CommandOutputMsg:
		if msg.ID != c.id {
			return c, nil
		}
		atBottom := c.viewport.AtBottom()
		c.content.Write(msg.Data)
		c.refreshViewport()
		if atBottom {
			c.viewport.GotoBottom()
		}
		return c, c.waitForOutput()
	case CommandExitMsg:
		if msg.ID == c.id {
			c.exited = true
		}
		return c, nil
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd
	}
	return c, nil
}

// SetSize implements Sizer. The PTY is resized when the region changes size.
func (c *CommandView) SetSize(width, height int) {
	c.viewport.Width = width
	c.viewport.Height = max(height-1, 0)
	size := pty.SizeFor(width, c.viewport.Height)
	if size == c.size {
		return
	}
	c.size = size
	if c.ptmx != nil {
		// The command may already have exited.
		_ = c.runner.Resize(c.ptmx, size)
	}
	c.refreshViewport()
}

// View implements View.
func (c *CommandView) View() string {
	header := Styles.Title.Render(headerText("$ "+c.command, c.viewport.Width))
	switch {
	case c.err != nil:
		header += " " + Styles.Error.Render(c.err.Error())
	case c.exited:
		header += " " + Styles.Hint.Render("(exited)")
	}
	return header + "\n" + c.viewport.View()
}

func (c *CommandView) refreshViewport() {
	out := strings.ReplaceAll(c.content.String(), "\r\n", "\n")
	c.viewport.SetContent(strings.ReplaceAll(out, "\r", ""))
}

// Close releases PTY resources.
func (c *CommandView) Close() error {
	if c.ptmx == nil {
		return nil
	}
	return c.ptmx.Close()
}
