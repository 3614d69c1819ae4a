package ui

// DefaultMinSize is the minimum size of either region when none is declared.
const DefaultMinSize = 50

// Metrics are the container and divider measurements along the split axis.
// A zero measurement means the element could not be measured.
type Metrics struct {
	Container int
	Divider   int
}

// Available reports whether both measurements are present.
func (m Metrics) Available() bool {
	return m.Container > 0 && m.Divider > 0
}

// Constraint is the range of acceptable sizes for the first region.
// Max is only meaningful when HasMax is set.
type Constraint struct {
	Min    float64
	Max    float64
	HasMax bool
}

// Constrain limits v to the constraint. The maximum is applied first so a
// minimum larger than the maximum wins.
func (c Constraint) Constrain(v float64) float64 {
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	if v < c.Min {
		v = c.Min
	}
	return v
}

// ResolveSize maps a pointer position to a new first-region size. The
// coordinate on the axis is returned unchanged; clamping happens at render
// time through FirstBounds.
func ResolveSize(axis Axis, x, y int) float64 {
	if axis == Vertical {
		return float64(y)
	}
	return float64(x)
}

// FirstBounds returns the first region's constraint. Zero minimums take
// DefaultMinSize. Without metrics there is no maximum.
func FirstBounds(m Metrics, firstMin, secondMin int) Constraint {
	c := Constraint{Min: float64(orDefault(firstMin))}
	if m.Available() {
		c.Max = float64(m.Container - orDefault(secondMin) - m.Divider)
		c.HasMax = true
	}
	return c
}

// CenteredSize is half the container minus half the divider, the size that
// puts the divider in the middle. ok is false when metrics are unavailable.
func CenteredSize(m Metrics) (size float64, ok bool) {
	if !m.Available() {
		return 0, false
	}
	return float64(m.Container)/2 - float64(m.Divider)/2, true
}

func orDefault(v int) int {
	if v <= 0 {
		return DefaultMinSize
	}
	return v
}
