package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// stubView records what the splitter tells it.
type stubView struct {
	text    string
	natural int
	width   int
	height  int
	msgs    []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return nil }

func (v *stubView) Update(msg tea.Msg) (View, tea.Cmd) {
	v.msgs = append(v.msgs, msg)
	return v, nil
}

func (v *stubView) View() string { return v.text }
func (v *stubView) SetSize(w, h int) { v.width, v.height = w, h }
func (v *stubView) NaturalSize(Axis) int { return v.natural }

// tenCellDivider widens the horizontal divider to 1 line + 9 padding cells.
func tenCellDivider(s lipgloss.Style) lipgloss.Style {
	return s.PaddingLeft(4).PaddingRight(5)
}

// newScenario builds the 400-cell container with a 10-cell divider.
func newScenario(t *testing.T) (*Splitter, *stubView, *stubView) {
	t.Helper()
	first, second := &stubView{}, &stubView{}
	s := NewSplitter(first, second, Options{DividerStyle: tenCellDivider})
	s.Init()
	s.SetSize(400, 20)
	return s, first, second
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func press(x, y int) tea.MouseMsg { return mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y) }
func move(x, y int) tea.MouseMsg { return mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y) }
func release(x, y int) tea.MouseMsg { return mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, y) }

func storedSize(t *testing.T, s *Splitter) float64 {
	t.Helper()
	size, ok := s.Size()
	require.True(t, ok, "expected a stored size")
	return size
}

func TestSplitter_Metrics(t *testing.T) {
	s, _, _ := newScenario(t)
	assert.Equal(t, Metrics{Container: 400, Divider: 10}, s.Metrics())
}

func TestSplitter_CentersOnMount(t *testing.T) {
	s, _, _ := newScenario(t)
	assert.Equal(t, 195.0, storedSize(t, s))
	assert.Equal(t, 195.0, s.DisplayedSize())
}

func TestSplitter_CentersWhenSizedBeforeMount(t *testing.T) {
	s := NewSplitter(&stubView{}, &stubView{}, Options{DividerStyle: tenCellDivider})
	s.SetSize(400, 20)
	_, ok := s.Size()
	assert.False(t, ok, "not mounted yet")

	s.Mount()
	assert.Equal(t, 195.0, storedSize(t, s))
}

func TestSplitter_DragScenario(t *testing.T) {
	s, first, second := newScenario(t)

	// Press on the divider (columns 195..204).
	s.Update(press(196, 5))
	require.True(t, s.Dragging())

	s.Update(move(30, 5))
	assert.Equal(t, 30.0, storedSize(t, s))
	assert.Equal(t, 50.0, s.DisplayedSize())
	assert.Equal(t, 50, first.width)
	assert.Equal(t, 400-50-10, second.width)

	s.Update(move(390, 5))
	assert.Equal(t, 390.0, storedSize(t, s))
	assert.Equal(t, 340.0, s.DisplayedSize())
	assert.Equal(t, 340, first.width)
	assert.Equal(t, 50, second.width)

	s.Update(release(390, 5))
	assert.False(t, s.Dragging())
	assert.Equal(t, 390.0, storedSize(t, s))

	// Moves after release are ignored.
	s.Update(move(100, 5))
	assert.Equal(t, 390.0, storedSize(t, s))
}

func TestSplitter_DragUsesPointerOutsideDivider(t *testing.T) {
	s, _, _ := newScenario(t)
	s.Update(press(200, 0))
	// Far outside the container.
	s.Update(move(1000, 500))
	assert.Equal(t, 1000.0, storedSize(t, s))
	assert.Equal(t, 340.0, s.DisplayedSize())
}

func TestSplitter_PressOutsideDividerDoesNotDrag(t *testing.T) {
	s, _, _ := newScenario(t)
	s.Update(press(10, 5))
	s.Update(move(300, 5))
	assert.False(t, s.Dragging())
	assert.Equal(t, 195.0, storedSize(t, s))
}

func TestSplitter_MoveBeforePressIgnored(t *testing.T) {
	s, _, _ := newScenario(t)
	assert.False(t, s.DragTo(100, 0))
	s.Update(move(100, 0))
	assert.Equal(t, 195.0, storedSize(t, s))
}

func TestSplitter_ReleaseWithoutDragIsNoop(t *testing.T) {
	s, _, _ := newScenario(t)
	assert.False(t, s.EndDrag())
	s.Update(release(0, 0))
	assert.Equal(t, 195.0, storedSize(t, s))
}

func TestSplitter_DoublePress(t *testing.T) {
	s, _, _ := newScenario(t)
	s.Update(press(196, 5))
	s.Update(press(203, 9))
	require.True(t, s.Dragging())

	s.Update(move(120, 9))
	assert.Equal(t, 120.0, storedSize(t, s))
	s.Update(release(120, 9))
	assert.False(t, s.Dragging())
}

func TestSplitter_AxisSwitchRecenters(t *testing.T) {
	s, first, _ := newScenario(t)
	s.BeginDrag(196, 5)
	s.DragTo(30, 5)
	s.EndDrag()

	s.SetAxis(Vertical)
	// Vertical divider: one line plus one row of padding above and below.
	assert.Equal(t, Metrics{Container: 20, Divider: 3}, s.Metrics())
	assert.Equal(t, 8.5, storedSize(t, s))
	assert.Equal(t, 400, first.width)

	s.SetAxis(Horizontal)
	assert.Equal(t, 195.0, storedSize(t, s))
}

func TestSplitter_VerticalDragUsesY(t *testing.T) {
	first, second := &stubView{}, &stubView{}
	s := NewSplitter(first, second, Options{Axis: Vertical, FirstMin: 2, SecondMin: 2})
	s.Init()
	s.SetSize(30, 21)
	require.Equal(t, 9.0, storedSize(t, s))

	// Divider rows 9..11.
	s.Update(press(5, 10))
	s.Update(move(29, 14))
	assert.Equal(t, 14.0, storedSize(t, s))
	assert.Equal(t, 14, first.height)
	assert.Equal(t, 21-14-3, second.height)
}

func TestSplitter_UnmeasuredPassesThroughUnclamped(t *testing.T) {
	s := NewSplitter(&stubView{natural: 10}, &stubView{}, Options{})
	s.Init()
	_, ok := s.Size()
	assert.False(t, ok, "no measurement, no size")
	assert.False(t, s.Metrics().Available())

	s.BeginDrag(0, 0)
	s.DragTo(1000, 0)
	assert.Equal(t, 1000.0, storedSize(t, s))
	assert.Equal(t, 1000.0, s.DisplayedSize())
}

func TestSplitter_UnsetUsesNaturalSize(t *testing.T) {
	first := &stubView{natural: 120}
	s := NewSplitter(first, &stubView{}, Options{})
	s.SetSize(400, 20)
	assert.Equal(t, 120.0, s.DisplayedSize())

	first.natural = 10
	assert.Equal(t, 50.0, s.DisplayedSize())
	first.natural = 390
	assert.Equal(t, 400.0-50-3, s.DisplayedSize())
}

func TestSplitter_FailedRemeasureKeepsSize(t *testing.T) {
	s, _, _ := newScenario(t)
	s.SetSize(400, 0)
	s.SetAxis(Vertical)
	assert.Equal(t, 195.0, storedSize(t, s))
}

func TestSplitter_ResizeKeepsStoredSize(t *testing.T) {
	s, _, _ := newScenario(t)
	s.SetSize(200, 20)
	assert.Equal(t, 195.0, storedSize(t, s))
	assert.Equal(t, 200.0-50-10, s.DisplayedSize())
}

func TestSplitter_ContainerFrameReducesMetrics(t *testing.T) {
	s := NewSplitter(&stubView{}, &stubView{}, Options{
		ContainerStyle: func(st lipgloss.Style) lipgloss.Style { return st.Padding(1) },
	})
	s.SetSize(100, 10)
	assert.Equal(t, Metrics{Container: 98, Divider: 3}, s.Metrics())
}

func TestSplitter_MountAndUnmount(t *testing.T) {
	s, _, _ := newScenario(t)
	assert.Equal(t, tea.EnableMouseAllMotion(), s.Mount()())

	s.BeginDrag(196, 5)
	cmd := s.Unmount()
	assert.Equal(t, tea.DisableMouse(), cmd())
	assert.False(t, s.Dragging())

	// Unmounted: mouse messages are ignored.
	s.Update(press(196, 5))
	assert.False(t, s.Dragging())
}

func TestSplitter_Cursor(t *testing.T) {
	s, _, _ := newScenario(t)
	assert.Equal(t, "col-resize", s.Cursor())
	assert.Empty(t, s.ActiveCursor())

	s.BeginDrag(196, 5)
	assert.Equal(t, "col-resize", s.ActiveCursor())
	s.SetAxis(Vertical)
	assert.Equal(t, "row-resize", s.ActiveCursor())

	custom := NewSplitter(&stubView{}, &stubView{}, Options{Cursor: "ew-resize"})
	assert.Equal(t, "ew-resize", custom.Cursor())
}

func TestSplitter_WheelGoesToRegionUnderPointer(t *testing.T) {
	s, first, second := newScenario(t)
	s.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 10, 3))
	assert.Len(t, first.msgs, 1)
	assert.Empty(t, second.msgs)

	s.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 300, 3))
	assert.Len(t, second.msgs, 1)
	assert.False(t, s.Dragging())
}

func TestSplitter_BroadcastsOtherMessages(t *testing.T) {
	s, first, second := newScenario(t)
	type ping struct{}
	s.Update(ping{})
	assert.Equal(t, []tea.Msg{ping{}}, first.msgs)
	assert.Equal(t, []tea.Msg{ping{}}, second.msgs)

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, first.msgs, 1, "keys are not broadcast")
}

func TestSplitter_PanelsAndFocusOrder(t *testing.T) {
	s, first, second := newScenario(t)
	panels := s.Panels()
	require.Len(t, panels, 2)
	assert.Equal(t, PanelFirst, panels[0].ID)
	assert.Same(t, first, panels[0].View)
	assert.Same(t, second, panels[1].View)
	assert.True(t, panels[0].Contains(400, 20, 194, 0))
	assert.False(t, panels[0].Contains(400, 20, 195, 0))
	assert.True(t, panels[1].Contains(400, 20, 205, 19))
	assert.Equal(t, []string{PanelFirst, PanelSecond}, s.FocusOrder())
	assert.Same(t, first, s.Region(PanelFirst))
	assert.Nil(t, s.Region("divider"))
}

func TestSplitter_HorizontalView(t *testing.T) {
	first, second := &stubView{text: "left"}, &stubView{text: "right"}
	s := NewSplitter(first, second, Options{FirstMin: 10, SecondMin: 10})
	s.Init()
	s.SetSize(120, 5)
	require.Equal(t, 58.5, storedSize(t, s))

	lines := strings.Split(s.View(), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		plain := []rune(ansi.Strip(line))
		assert.Equal(t, 120, lipgloss.Width(line))
		assert.Equal(t, '│', plain[59])
	}
	assert.True(t, strings.HasPrefix(ansi.Strip(lines[0]), "left"))
	assert.Equal(t, "right", strings.TrimSpace(string([]rune(ansi.Strip(lines[0]))[61:])))
	assert.Equal(t, 58, first.width)
	assert.Equal(t, 120-58-3, second.width)
}

func TestSplitter_VerticalView(t *testing.T) {
	first, second := &stubView{text: "top"}, &stubView{text: "bottom"}
	s := NewSplitter(first, second, Options{Axis: Vertical, FirstMin: 2, SecondMin: 2})
	s.Init()
	s.SetSize(30, 21)

	lines := strings.Split(s.View(), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, strings.Repeat("─", 30), ansi.Strip(lines[10]))
	assert.Equal(t, "top", strings.TrimSpace(ansi.Strip(lines[0])))
	assert.Equal(t, "bottom", strings.TrimSpace(ansi.Strip(lines[12])))
	assert.Equal(t, 9, first.height)
	assert.Equal(t, 30, first.width)
}

func TestSplitter_NaturalViewBeforeSize(t *testing.T) {
	s := NewSplitter(&stubView{text: "a"}, &stubView{text: "b"}, Options{})
	view := ansi.Strip(s.View())
	assert.Contains(t, view, "a")
	assert.Contains(t, view, "│")
	assert.Contains(t, view, "b")
}

func TestSplitter_DragSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s := NewSplitter(&stubView{}, &stubView{}, Options{
		DividerStyle: tenCellDivider,
		Tracer:       tp.Tracer("test"),
	})
	s.Init()
	s.SetSize(400, 20)

	s.Update(press(196, 5))
	s.Update(press(197, 5))
	s.Update(move(390, 5))
	s.Update(release(390, 5))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "splitter.drag", span.Name())
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "restart", span.Events()[0].Name)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "horizontal", attrs["axis"].AsString())
	assert.Equal(t, int64(196), attrs["start.x"].AsInt64())
	assert.Equal(t, 390.0, attrs["size.stored"].AsFloat64())
	assert.Equal(t, 340.0, attrs["size.displayed"].AsFloat64())
}
