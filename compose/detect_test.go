package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainImage hides the pixel buffer of the wrapped image, forcing the
// generic scan path.
type plainImage struct {
	image.Image
}

func TestOpaqueBounds_FindsRegion(t *testing.T) {
	t.Parallel()

	img := blockImage(100, 100, image.Rect(30, 40, 60, 70), color.NRGBA{R: 255, A: 255})

	bounds, ok := OpaqueBounds(img, 0)
	require.True(t, ok)
	assert.Equal(t, image.Rect(30, 40, 60, 70), bounds)
}

func TestOpaqueBounds_SinglePixel(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	img.SetNRGBA(17, 23, color.NRGBA{G: 200, A: 100})

	bounds, ok := OpaqueBounds(img, 0)
	require.True(t, ok)
	assert.Equal(t, image.Rect(17, 23, 18, 24), bounds)
}

func TestOpaqueBounds_RespectsThreshold(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(5, 5, color.NRGBA{R: 10, A: 100})

	_, ok := OpaqueBounds(img, 150)
	assert.False(t, ok)

	bounds, ok := OpaqueBounds(img, 99)
	require.True(t, ok)
	assert.Equal(t, image.Rect(5, 5, 6, 6), bounds)

	// Threshold is exclusive: alpha equal to it does not count.
	_, ok = OpaqueBounds(img, 100)
	assert.False(t, ok)
}

func TestOpaqueBounds_FullyTransparent(t *testing.T) {
	t.Parallel()

	_, ok := OpaqueBounds(image.NewNRGBA(image.Rect(0, 0, 20, 20)), 0)
	assert.False(t, ok)
}

func TestOpaqueBounds_GenericPathAgreesWithFastPath(t *testing.T) {
	t.Parallel()

	img := blockImage(64, 64, image.Rect(10, 5, 40, 50), color.NRGBA{B: 128, A: 200})

	fast, okFast := OpaqueBounds(img, 50)
	generic, okGeneric := OpaqueBounds(plainImage{img}, 50)

	require.True(t, okFast)
	require.True(t, okGeneric)
	assert.Equal(t, fast, generic)
}

func TestOpaqueBounds_SubImageKeepsCoordinates(t *testing.T) {
	t.Parallel()

	img := blockImage(100, 100, image.Rect(30, 30, 35, 35), color.NRGBA{R: 1, A: 255})
	sub, ok := img.SubImage(image.Rect(20, 20, 80, 80)).(*image.NRGBA)
	require.True(t, ok)

	bounds, found := OpaqueBounds(sub, 0)
	require.True(t, found)
	assert.Equal(t, image.Rect(30, 30, 35, 35), bounds)
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  color.NRGBA
	}{
		{"short white", "#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"no hash", "000", color.NRGBA{A: 255}},
		{"full form", "#FF8800", color.NRGBA{R: 255, G: 136, A: 255}},
		{"with alpha", "#ff880080", color.NRGBA{R: 255, G: 136, A: 128}},
		{"mixed case", "#AbCdEf", color.NRGBA{R: 171, G: 205, B: 239, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHexColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#ff", "#ggg", "#12345", "#ff88zz", "white"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			t.Parallel()
			_, err := ParseHexColor(bad)
			assert.ErrorIs(t, err, ErrBadColor)
		})
	}
}
