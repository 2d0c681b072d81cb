package boing

import "image"

// Canvas is the fixed-size drawing area of the widget window. It is twice the
// resting sprite in each direction so stretched frames still fit.
type Canvas struct {
	Width, Height int
}

// NewCanvas returns the canvas for a resting sprite.
func NewCanvas(resting image.Image) Canvas {
	b := resting.Bounds()
	return Canvas{Width: b.Dx() * 2, Height: b.Dy() * 2}
}

// Size returns the canvas dimensions as a point.
func (c Canvas) Size() image.Point {
	return image.Pt(c.Width, c.Height)
}

// Anchor returns the top-left position at which frame must be drawn so that
// its bottom edge sits on the canvas bottom and it is centered horizontally.
func (c Canvas) Anchor(frame image.Image) image.Point {
	b := frame.Bounds()
	return image.Pt(floorDiv(c.Width-b.Dx(), 2), c.Height-b.Dy())
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
