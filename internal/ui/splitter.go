package ui

import (
	"context"
	"errors"
	"image"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Panel IDs of the two regions.
const (
	PanelFirst  = "first"
	PanelSecond = "second"
)

const tracerName = "panesplit/ui"

// Options configures a Splitter. Zero values select the defaults.
type Options struct {
	Axis Axis

	// FirstMin is the first region's minimum size; 0 means DefaultMinSize.
	FirstMin int
	// SecondMin only bounds the first region's maximum:
	// container - SecondMin - divider. 0 means DefaultMinSize.
	SecondMin int

	// Cursor is the pointer shape reported while dragging. Empty selects
	// col-resize or row-resize from the axis.
	Cursor string
	// DividerColor colors the divider line; empty selects ColorDivider.
	DividerColor string

	ContainerStyle StyleHook
	FirstStyle     StyleHook
	SecondStyle    StyleHook
	DividerStyle   StyleHook

	Logger *zerolog.Logger
	Tracer trace.Tracer
}

// Splitter lays out two regions separated by a divider the user can drag
// with the mouse.
//
// The stored first-region size is the raw pointer coordinate of the last
// drag move (or the centered size). Min/max constraints are applied when
// laying out, so Size and DisplayedSize can differ.
type Splitter struct {
	first  View
	second View
	opts   Options
	axis   Axis

	width  int
	height int

	size  float64
	sized bool

	drag    DragTracker
	mounted bool
	span    trace.Span

	log    zerolog.Logger
	tracer trace.Tracer
}

var (
	_ View   = (*Splitter)(nil)
	_ Layout = (*Splitter)(nil)
	_ Sizer  = (*Splitter)(nil)
)

// NewSplitter creates a splitter over two regions.
func NewSplitter(first, second View, opts Options) *Splitter {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "splitter").Logger()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Splitter{
		first:  first,
		second: second,
		opts:   opts,
		axis:   opts.Axis,
		log:    log,
		tracer: tracer,
	}
}

// Init implements View. It mounts the splitter and initialises both regions.
func (s *Splitter) Init() tea.Cmd {
	return tea.Batch(s.Mount(), s.first.Init(), s.second.Init())
}

// Mount centers the divider if the container can be measured and turns on
// terminal-wide mouse reporting, so drags keep tracking once the pointer
// leaves the divider.
func (s *Splitter) Mount() tea.Cmd {
	s.mounted = true
	s.center()
	return tea.EnableMouseAllMotion
}

// Unmount ends any drag and turns mouse reporting off. Mouse messages are
// ignored until the next Mount.
func (s *Splitter) Unmount() tea.Cmd {
	s.EndDrag()
	s.mounted = false
	return tea.DisableMouse
}

// Update implements View.
// Key messages are not handled here; route them to one region with
// UpdateRegion. Other messages are broadcast to both regions.
func (s *Splitter) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil
	case tea.MouseMsg:
		return s, s.handleMouse(msg)
	case tea.KeyMsg:
		return s, nil
	}
	return s, tea.Batch(s.UpdateRegion(PanelFirst, msg), s.UpdateRegion(PanelSecond, msg))
}

func (s *Splitter) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !s.mounted {
		return nil
	}
	ev := tea.MouseEvent(msg)
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.IsWheel() {
			return s.routeToPanelAt(ev.X, ev.Y, msg)
		}
		if image.Pt(ev.X, ev.Y).In(s.layout().divider) {
			s.BeginDrag(ev.X, ev.Y)
		}
	case tea.MouseActionMotion:
		s.DragTo(ev.X, ev.Y)
	case tea.MouseActionRelease:
		s.EndDrag()
	}
	return nil
}

func (s *Splitter) routeToPanelAt(x, y int, msg tea.Msg) tea.Cmd {
	for _, p := range s.Panels() {
		if p.Contains(s.width, s.height, x, y) {
			return s.UpdateRegion(p.ID, msg)
		}
	}
	return nil
}

// BeginDrag starts a drag session at (x, y). A press during an active drag
// replaces the session's start position.
func (s *Splitter) BeginDrag(x, y int) {
	if s.span == nil {
		_, s.span = s.tracer.Start(context.Background(), "splitter.drag",
			trace.WithAttributes(
				attribute.String("axis", s.axis.String()),
				attribute.Int("start.x", x),
				attribute.Int("start.y", y),
			))
	} else {
		s.span.AddEvent("restart", trace.WithAttributes(
			attribute.Int("start.x", x),
			attribute.Int("start.y", y),
		))
	}
	s.drag.Begin(x, y)
	s.log.Debug().Int("x", x).Int("y", y).Str("axis", s.axis.String()).Msg("drag begin")
}

// DragTo stores the pointer coordinate on the axis as the first-region size.
// Without an active drag it does nothing and returns false.
func (s *Splitter) DragTo(x, y int) bool {
	size, ok := s.drag.Update(s.axis, x, y)
	if !ok {
		return false
	}
	s.size, s.sized = size, true
	s.sizeRegions()
	return true
}

// EndDrag ends the drag session. Returns false if none was active.
func (s *Splitter) EndDrag() bool {
	if !s.drag.End() {
		return false
	}
	displayed := s.DisplayedSize()
	if s.span != nil {
		s.span.SetAttributes(
			attribute.Float64("size.stored", s.size),
			attribute.Float64("size.displayed", displayed),
		)
		s.span.End()
		s.span = nil
	}
	s.log.Debug().Float64("stored", s.size).Float64("displayed", displayed).Msg("drag end")
	return true
}

// Dragging reports whether a drag session is active.
func (s *Splitter) Dragging() bool {
	return s.drag.Active()
}

// SetSize implements Sizer. While the first-region size is still unset, a
// successful measurement centers the divider.
func (s *Splitter) SetSize(width, height int) {
	s.width, s.height = width, height
	if s.mounted && !s.sized {
		s.center()
	}
	s.sizeRegions()
}

// Axis returns the split axis.
func (s *Splitter) Axis() Axis {
	return s.axis
}

// SetAxis switches the split axis and re-centers the divider for it.
func (s *Splitter) SetAxis(a Axis) {
	if a == s.axis {
		return
	}
	s.axis = a
	if s.mounted {
		s.center()
	}
	s.sizeRegions()
}

// center sets the size to CenteredSize. When measurement fails the previous
// size is kept.
func (s *Splitter) center() {
	m := s.Metrics()
	size, ok := CenteredSize(m)
	if !ok {
		s.log.Debug().Int("container", m.Container).Int("divider", m.Divider).Msg("centering skipped")
		return
	}
	s.size, s.sized = size, true
	s.sizeRegions()
}

// Size returns the stored first-region size. ok is false until the size
// is first measured or dragged.
func (s *Splitter) Size() (size float64, ok bool) {
	return s.size, s.sized
}

// DisplayedSize is the first region's size after applying its constraint.
// An unset size falls back to the region's natural size.
func (s *Splitter) DisplayedSize() float64 {
	return s.displayed(s.Bounds())
}

// Bounds returns the first region's current constraint.
func (s *Splitter) Bounds() Constraint {
	return FirstBounds(s.Metrics(), s.opts.FirstMin, s.opts.SecondMin)
}

// Metrics measures the container content and the rendered divider along the
// axis.
func (s *Splitter) Metrics() Metrics {
	return s.metricsFor(s.width, s.height)
}

// Cursor returns the configured pointer shape for the divider.
func (s *Splitter) Cursor() string {
	if s.opts.Cursor != "" {
		return s.opts.Cursor
	}
	if s.axis == Vertical {
		return "row-resize"
	}
	return "col-resize"
}

// ActiveCursor returns the pointer shape the whole container should show:
// Cursor while dragging, empty otherwise.
func (s *Splitter) ActiveCursor() string {
	if !s.drag.Active() {
		return ""
	}
	return s.Cursor()
}

// Panels implements Layout.
func (s *Splitter) Panels() []Panel {
	return []Panel{
		{ID: PanelFirst, View: s.first, Bounds: func(w, h int) image.Rectangle { return s.layoutFor(w, h).first }},
		{ID: PanelSecond, View: s.second, Bounds: func(w, h int) image.Rectangle { return s.layoutFor(w, h).second }},
	}
}

// FocusOrder implements Layout.
func (s *Splitter) FocusOrder() []string {
	return []string{PanelFirst, PanelSecond}
}

// Region returns the view hosted in the panel with the given ID.
func (s *Splitter) Region(id string) View {
	switch id {
	case PanelFirst:
		return s.first
	case PanelSecond:
		return s.second
	}
	return nil
}

// UpdateRegion passes msg to one region and keeps the view it returns.
func (s *Splitter) UpdateRegion(id string, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch id {
	case PanelFirst:
		s.first, cmd = s.first.Update(msg)
	case PanelSecond:
		s.second, cmd = s.second.Update(msg)
	}
	return cmd
}

// Close closes regions that hold resources.
func (s *Splitter) Close() error {
	var errs []error
	for _, v := range []View{s.first, s.second} {
		if c, ok := v.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// View implements View.
func (s *Splitter) View() string {
	if s.width <= 0 || s.height <= 0 {
		return s.naturalView()
	}
	l := s.layout()
	var blocks []string
	if b := renderRegion(s.first, s.firstStyle(), l.first); b != "" {
		blocks = append(blocks, b)
	}
	if !l.divider.Empty() {
		d := s.renderDivider(s.axis.cross(l.divider.Dx(), l.divider.Dy()))
		blocks = append(blocks, fitBlock(d, l.divider.Dx(), l.divider.Dy()))
	}
	if b := renderRegion(s.second, s.secondStyle(), l.second); b != "" {
		blocks = append(blocks, b)
	}
	cw, ch := s.contentSize(s.width, s.height)
	return s.containerStyle().Render(fitBlock(s.join(blocks...), cw, ch))
}

// naturalView renders both regions at their own size before the container
// has been measured.
func (s *Splitter) naturalView() string {
	first, second := s.first.View(), s.second.View()
	cross := max(lipgloss.Height(first), lipgloss.Height(second))
	if s.axis == Vertical {
		cross = max(lipgloss.Width(first), lipgloss.Width(second))
	}
	return s.join(
		s.firstStyle().Render(first),
		s.renderDivider(max(cross, 1)),
		s.secondStyle().Render(second),
	)
}

func (s *Splitter) join(blocks ...string) string {
	if s.axis == Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func renderRegion(v View, st lipgloss.Style, r image.Rectangle) string {
	if r.Empty() {
		return ""
	}
	w, h := innerSize(st, r)
	return fitBlock(st.Render(fitBlock(v.View(), w, h)), r.Dx(), r.Dy())
}

// renderDivider draws the divider line across cross cells, padded by one
// cell on each side along the axis.
func (s *Splitter) renderDivider(cross int) string {
	color := s.opts.DividerColor
	if color == "" {
		color = ColorDivider
	}
	line := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	var inner string
	base := lipgloss.NewStyle()
	if s.axis == Horizontal {
		inner = strings.TrimSuffix(strings.Repeat("│\n", cross), "\n")
		base = base.Padding(0, 1)
	} else {
		inner = strings.Repeat("─", cross)
		base = base.Padding(1, 0)
	}
	return s.opts.DividerStyle.apply(base).Render(line.Render(inner))
}

func (s *Splitter) dividerThickness(cross int) int {
	d := s.renderDivider(max(cross, 1))
	if s.axis == Horizontal {
		return lipgloss.Width(d)
	}
	return lipgloss.Height(d)
}

func (s *Splitter) containerStyle() lipgloss.Style {
	return s.opts.ContainerStyle.apply(lipgloss.NewStyle())
}

func (s *Splitter) firstStyle() lipgloss.Style {
	return s.opts.FirstStyle.apply(lipgloss.NewStyle())
}

func (s *Splitter) secondStyle() lipgloss.Style {
	return s.opts.SecondStyle.apply(lipgloss.NewStyle())
}

func (s *Splitter) contentSize(width, height int) (int, int) {
	st := s.containerStyle()
	return max(0, width-st.GetHorizontalFrameSize()), max(0, height-st.GetVerticalFrameSize())
}

func (s *Splitter) metricsFor(width, height int) Metrics {
	cw, ch := s.contentSize(width, height)
	if cw == 0 || ch == 0 {
		return Metrics{}
	}
	return Metrics{
		Container: s.axis.main(cw, ch),
		Divider:   s.dividerThickness(s.axis.cross(cw, ch)),
	}
}

func (s *Splitter) displayed(b Constraint) float64 {
	if s.sized {
		return b.Constrain(s.size)
	}
	return b.Constrain(s.natural())
}

// natural is the first region's preferred outer extent along the axis.
func (s *Splitter) natural() float64 {
	st := s.firstStyle()
	frame := s.axis.main(st.GetHorizontalFrameSize(), st.GetVerticalFrameSize())
	if n, ok := s.first.(NaturalSizer); ok {
		return float64(n.NaturalSize(s.axis) + frame)
	}
	v := s.first.View()
	return float64(s.axis.main(lipgloss.Width(v), lipgloss.Height(v)) + frame)
}

// splitLayout is the resolved placement of the three children, in cells
// relative to the splitter's top-left corner.
type splitLayout struct {
	first   image.Rectangle
	divider image.Rectangle
	second  image.Rectangle
}

func (s *Splitter) layout() splitLayout {
	return s.layoutFor(s.width, s.height)
}

func (s *Splitter) layoutFor(width, height int) splitLayout {
	st := s.containerStyle()
	origin := image.Pt(
		st.GetMarginLeft()+st.GetBorderLeftSize()+st.GetPaddingLeft(),
		st.GetMarginTop()+st.GetBorderTopSize()+st.GetPaddingTop(),
	)
	cw, ch := s.contentSize(width, height)
	total, cross := s.axis.main(cw, ch), s.axis.cross(cw, ch)

	m := s.metricsFor(width, height)
	first := min(max(int(s.displayed(FirstBounds(m, s.opts.FirstMin, s.opts.SecondMin))), 0), total)
	divider := min(m.Divider, total-first)
	second := max(total-first-divider, 0)

	return splitLayout{
		first:   s.rect(origin, 0, first, cross),
		divider: s.rect(origin, first, divider, cross),
		second:  s.rect(origin, first+divider, second, cross),
	}
}

func (s *Splitter) rect(origin image.Point, offset, length, cross int) image.Rectangle {
	lo := origin.Add(s.axis.point(offset, 0))
	return image.Rectangle{Min: lo, Max: lo.Add(s.axis.point(length, cross))}
}

// sizeRegions tells both regions their inner size for the current layout.
func (s *Splitter) sizeRegions() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	l := s.layout()
	sizeRegion(s.first, s.firstStyle(), l.first)
	sizeRegion(s.second, s.secondStyle(), l.second)
}

func sizeRegion(v View, st lipgloss.Style, r image.Rectangle) {
	if sz, ok := v.(Sizer); ok {
		sz.SetSize(innerSize(st, r))
	}
}

func innerSize(st lipgloss.Style, r image.Rectangle) (int, int) {
	return max(r.Dx()-st.GetHorizontalFrameSize(), 0), max(r.Dy()-st.GetVerticalFrameSize(), 0)
}
