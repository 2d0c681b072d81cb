package boing

import (
	"image"
	"testing"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(image.NewNRGBA(image.Rect(0, 0, 30, 40)))
	if c.Width != 60 || c.Height != 80 {
		t.Errorf("canvas = %dx%d, want 60x80", c.Width, c.Height)
	}
	if c.Size() != image.Pt(60, 80) {
		t.Errorf("Size = %v", c.Size())
	}
}

func TestCanvasAnchor(t *testing.T) {
	c := Canvas{Width: 20, Height: 20}
	tests := []struct {
		name string
		w, h int
		want image.Point
	}{
		{"centered", 10, 10, image.Pt(5, 10)},
		{"odd width rounds down", 11, 4, image.Pt(4, 16)},
		{"full", 20, 20, image.Pt(0, 0)},
		{"wider than canvas", 25, 30, image.Pt(-3, -10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Anchor(image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h)))
			if got != tt.want {
				t.Errorf("Anchor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{9, 2, 4},
		{-5, 2, -3},
		{-4, 2, -2},
		{0, 2, 0},
		{5, -2, -3},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
