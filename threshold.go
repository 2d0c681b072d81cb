package boing

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultAlphaCutoff keeps only fully opaque pixels.
const DefaultAlphaCutoff uint8 = 0xFF

// Threshold returns a copy of img whose alpha is binarized: alpha below cutoff
// becomes 0, everything else 255. Color channels are copied unchanged
// (straight alpha). The result's bounds start at (0, 0).
//
// Bilinear resampling leaves partially transparent pixels along the sprite's
// edge; a color-keyed window shows those as a fringe, so every frame goes
// through Threshold.
func Threshold(img image.Image, cutoff uint8) *image.NRGBA {
	out := cloneNRGBA(img)
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] < cutoff {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 0xFF
		}
	}
	return out
}

// cloneNRGBA copies img into a new NRGBA image at the origin. NRGBA sources
// are copied byte for byte so fully transparent pixels keep their color.
func cloneNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+rowLen], src.Pix[si:si+rowLen])
		}
		return out
	}

	draw.Copy(out, image.Point{}, img, b, draw.Src, nil)
	return out
}
