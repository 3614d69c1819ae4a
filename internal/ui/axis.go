package ui

import (
	"fmt"
	"image"
	"strings"
)

// Axis is the dimension along which a Splitter divides its container.
type Axis uint8

const (
	// Horizontal places the regions side by side; sizes follow width and pointer X.
	Horizontal Axis = iota
	// Vertical stacks the regions; sizes follow height and pointer Y.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseAxis accepts "horizontal"/"h" and "vertical"/"v" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q (want horizontal or vertical)", s)
}

// Toggle returns the other axis.
func (a Axis) Toggle() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) main(w, h int) int {
	if a == Horizontal {
		return w
	}
	return h
}

func (a Axis) cross(w, h int) int {
	if a == Horizontal {
		return h
	}
	return w
}

// point builds a point from main/cross components.
func (a Axis) point(main, cross int) image.Point {
	if a == Horizontal {
		return image.Pt(main, cross)
	}
	return image.Pt(cross, main)
}
