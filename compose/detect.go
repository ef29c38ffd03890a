package compose

import "image"

// OpaqueBounds returns the bounding box of pixels whose alpha exceeds
// threshold, in the image's own coordinate space. The second return is
// false when no pixel qualifies.
//
// NRGBA and RGBA images are scanned through their pixel buffers; other
// formats fall back to the generic color interface.
func OpaqueBounds(img image.Image, threshold uint8) (image.Rectangle, bool) {
	switch im := img.(type) {
	case *image.NRGBA:
		return alphaBounds(im.Pix, im.Stride, im.Rect, threshold)
	case *image.RGBA:
		return alphaBounds(im.Pix, im.Stride, im.Rect, threshold)
	}
	return alphaBoundsGeneric(img, threshold)
}

// alphaBounds scans 8-bit RGBA-ordered pixel data. The alpha byte sits
// at offset 3 of each pixel for both premultiplied and non-alpha-
// premultiplied layouts.
func alphaBounds(pix []uint8, stride int, rect image.Rectangle, threshold uint8) (image.Rectangle, bool) {
	var minX, minY, maxX, maxY int
	found := false
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := pix[(y-rect.Min.Y)*stride:]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if row[(x-rect.Min.X)*4+3] <= threshold {
				continue
			}
			if !found {
				minX, maxX, minY, maxY = x, x, y, y
				found = true
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			maxY = y
		}
	}
	if !found {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// alphaBoundsGeneric is the slow path for arbitrary image types.
func alphaBoundsGeneric(img image.Image, threshold uint8) (image.Rectangle, bool) {
	cut := uint32(threshold) * 0x101
	rect := img.Bounds()
	var minX, minY, maxX, maxY int
	found := false
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a <= cut {
				continue
			}
			if !found {
				minX, maxX, minY, maxY = x, x, y, y
				found = true
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			maxY = y
		}
	}
	if !found {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
