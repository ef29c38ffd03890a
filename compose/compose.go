// Package compose renders a source image onto a fixed-size canvas with
// placement, zoom, and optional automatic centering on opaque content.
package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DefaultCanvasSize is the square canvas edge used when no size option
// is given.
const DefaultCanvasSize = 1080

// Sentinel errors for canvas rendering.
var (
	// ErrInvalidCanvas is returned when a canvas dimension is less
	// than one pixel.
	ErrInvalidCanvas = errors.New("gridzip: invalid canvas size")

	// ErrInvalidScale is returned when the zoom factor is negative or
	// scales the source image down to nothing.
	ErrInvalidScale = errors.New("gridzip: invalid scale")
)

// Placement positions the source image on the canvas.
type Placement struct {
	// OffsetX and OffsetY locate the scaled image's top-left corner
	// on the canvas. Negative values crop.
	OffsetX, OffsetY int

	// Scale is the zoom factor applied to the source. Zero means 1.
	Scale float64
}

// Fit returns a placement that scales src to the largest size fully
// contained by a w x h canvas and centers it.
func Fit(src image.Rectangle, w, h int) Placement {
	return fitPlacement(src, w, h, false)
}

// Cover returns a placement that scales src to the smallest size fully
// covering a w x h canvas and centers it. Overflow is cropped.
func Cover(src image.Rectangle, w, h int) Placement {
	return fitPlacement(src, w, h, true)
}

func fitPlacement(src image.Rectangle, w, h int, cover bool) Placement {
	if src.Dx() < 1 || src.Dy() < 1 || w < 1 || h < 1 {
		return Placement{Scale: 1}
	}
	sx := float64(w) / float64(src.Dx())
	sy := float64(h) / float64(src.Dy())
	scale := math.Min(sx, sy)
	if cover {
		scale = math.Max(sx, sy)
	}
	sw := int(math.Round(float64(src.Dx()) * scale))
	sh := int(math.Round(float64(src.Dy()) * scale))
	return Placement{
		OffsetX: (w - sw) / 2,
		OffsetY: (h - sh) / 2,
		Scale:   scale,
	}
}

// config holds configuration for one Render call.
type config struct {
	width      int
	height     int
	placement  Placement
	background color.Color
	scaler     draw.Scaler
	autoCenter bool
	threshold  uint8
}

// Option configures Render.
type Option func(*config)

// WithCanvasSize sets the canvas dimensions in pixels.
// The default is a DefaultCanvasSize square.
func WithCanvasSize(w, h int) Option {
	return func(cfg *config) {
		cfg.width = w
		cfg.height = h
	}
}

// WithPlacement sets the source image's position and zoom on the
// canvas. The default places the image at the origin unscaled.
func WithPlacement(p Placement) Option {
	return func(cfg *config) {
		cfg.placement = p
	}
}

// WithBackground fills the canvas with c before the image is drawn.
// The default leaves the canvas transparent.
func WithBackground(c color.Color) Option {
	return func(cfg *config) {
		cfg.background = c
	}
}

// WithScaler sets the interpolator used for zooming.
// The default is draw.ApproxBiLinear.
func WithScaler(s draw.Scaler) Option {
	return func(cfg *config) {
		cfg.scaler = s
	}
}

// WithAutoCenter centers the source's opaque region on the canvas,
// overriding the placement offsets. Pixels with alpha above threshold
// count as opaque; a fully transparent source centers its whole bounds.
func WithAutoCenter(threshold uint8) Option {
	return func(cfg *config) {
		cfg.autoCenter = true
		cfg.threshold = threshold
	}
}

// Render draws src onto a fresh canvas and returns it.
//
// The source is zoomed by the placement's scale factor, positioned by
// its offsets, and composited over the background. Regions that fall
// outside the canvas are cropped.
func Render(src image.Image, opts ...Option) (*image.NRGBA, error) {
	cfg := config{
		width:  DefaultCanvasSize,
		height: DefaultCanvasSize,
		scaler: draw.ApproxBiLinear,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.width < 1 || cfg.height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, cfg.width, cfg.height)
	}
	scale := cfg.placement.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}

	sb := src.Bounds()
	sw := int(math.Round(float64(sb.Dx()) * scale))
	sh := int(math.Round(float64(sb.Dy()) * scale))
	if sw < 1 || sh < 1 {
		return nil, fmt.Errorf("%w: %g leaves no pixels", ErrInvalidScale, scale)
	}

	offsetX, offsetY := cfg.placement.OffsetX, cfg.placement.OffsetY
	if cfg.autoCenter {
		offsetX, offsetY = centerOffsets(src, sb, scale, cfg.width, cfg.height, cfg.threshold)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	if cfg.background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(cfg.background), image.Point{}, draw.Src)
	}

	target := image.Rect(offsetX, offsetY, offsetX+sw, offsetY+sh)
	cfg.scaler.Scale(dst, target, src, sb, draw.Over, nil)
	return dst, nil
}

// centerOffsets returns the placement offsets that put the source's
// opaque region in the middle of the canvas.
func centerOffsets(src image.Image, sb image.Rectangle, scale float64, w, h int, threshold uint8) (int, int) {
	region, ok := OpaqueBounds(src, threshold)
	if !ok {
		region = sb
	}
	cx := float64(region.Min.X+region.Max.X) / 2
	cy := float64(region.Min.Y+region.Max.Y) / 2
	offsetX := int(math.Round(float64(w)/2 - scale*(cx-float64(sb.Min.X))))
	offsetY := int(math.Round(float64(h)/2 - scale*(cy-float64(sb.Min.Y))))
	return offsetX, offsetY
}
