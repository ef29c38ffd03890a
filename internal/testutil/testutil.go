// Package testutil provides shared helpers for tests across the module.
package testutil

import (
	"image"
	"image/color"
)

// GradientImage returns a deterministic opaque test image where every
// pixel's color encodes its own coordinates, so misplaced pixels show
// up in comparisons.
func GradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255}) //nolint:gosec // coordinates wrap at 256
		}
	}
	return img
}

// SamePixel reports whether two images agree at (x, y) once both are
// reduced to premultiplied 16-bit RGBA.
func SamePixel(a, b image.Image, x, y int) bool {
	ar, ag, ab, aa := a.At(x, y).RGBA()
	br, bg, bb, ba := b.At(x, y).RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
