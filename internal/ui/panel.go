package ui

import "image"

// BoundsFunc returns the panel's rectangle given the dimensions of the box
// that lays it out.
type BoundsFunc func(width, height int) image.Rectangle

// Panel hosts a View and knows its bounds within a layout.
type Panel struct {
	ID     string
	View   View
	Bounds BoundsFunc
}

// Contains reports whether the cell (x, y) is inside the panel when laid out
// in a box of the given size.
func (p Panel) Contains(width, height, x, y int) bool {
	if p.Bounds == nil {
		return false
	}
	return image.Pt(x, y).In(p.Bounds(width, height))
}
