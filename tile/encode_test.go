package tile

import (
	"bytes"
	"context"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gridzip"
	"github.com/meigma/gridzip/internal/testutil"
)

func TestEncodeAll_NamesByGridPosition(t *testing.T) {
	t.Parallel()

	tiles, err := Slice(testutil.GradientImage(60, 40), 2, 3)
	require.NoError(t, err)

	entries, err := EncodeAll(context.Background(), tiles)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	wantNames := []string{
		"piece_0_0.png", "piece_0_1.png", "piece_0_2.png",
		"piece_1_0.png", "piece_1_1.png", "piece_1_2.png",
	}
	for i, entry := range entries {
		assert.Equal(t, wantNames[i], entry.Name)

		img, err := png.Decode(bytes.NewReader(entry.Data))
		require.NoError(t, err)
		assert.Equal(t, 20, img.Bounds().Dx())
		assert.Equal(t, 20, img.Bounds().Dy())
	}
}

func TestEncodeAll_RoundTripsPixels(t *testing.T) {
	t.Parallel()

	src := testutil.GradientImage(64, 64)
	tiles, err := Slice(src, 2, 2)
	require.NoError(t, err)

	entries, err := EncodeAll(context.Background(), tiles)
	require.NoError(t, err)

	// Decode the bottom-right piece and compare a few pixels against
	// the source region it was cut from.
	img, err := png.Decode(bytes.NewReader(entries[3].Data))
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())

	for _, pt := range [][2]int{{0, 0}, {10, 20}, {31, 31}} {
		ar, ag, ab, aa := img.At(pt[0], pt[1]).RGBA()
		br, bg, bb, ba := src.At(pt[0]+32, pt[1]+32).RGBA()
		assert.Equal(t, [4]uint32{br, bg, bb, ba}, [4]uint32{ar, ag, ab, aa}, "pixel %v", pt)
	}
}

func TestEncodeAll_CustomNamePattern(t *testing.T) {
	t.Parallel()

	tiles, err := Slice(testutil.GradientImage(20, 20), 2, 2)
	require.NoError(t, err)

	entries, err := EncodeAll(context.Background(), tiles, EncodeWithNamePattern("r%dc%d.png"))
	require.NoError(t, err)
	assert.Equal(t, "r0c0.png", entries[0].Name)
	assert.Equal(t, "r1c1.png", entries[3].Name)
}

func TestEncodeAll_DeterministicAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	tiles, err := Slice(testutil.GradientImage(90, 90), 3, 3)
	require.NoError(t, err)

	serial, err := EncodeAll(context.Background(), tiles, EncodeWithWorkers(-1))
	require.NoError(t, err)
	parallel, err := EncodeAll(context.Background(), tiles, EncodeWithWorkers(4))
	require.NoError(t, err)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Name, parallel[i].Name)
		assert.Equal(t, serial[i].Data, parallel[i].Data)
	}
}

func TestEncodeAll_ReportsProgress(t *testing.T) {
	t.Parallel()

	tiles, err := Slice(testutil.GradientImage(40, 40), 2, 2)
	require.NoError(t, err)

	var mu sync.Mutex
	var events []gridzip.ProgressEvent
	_, err = EncodeAll(context.Background(), tiles, EncodeWithProgress(func(ev gridzip.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}))
	require.NoError(t, err)

	require.Len(t, events, 4)
	maxDone := 0
	for _, ev := range events {
		assert.Equal(t, gridzip.StageEncoding, ev.Stage)
		assert.Equal(t, 4, ev.FilesTotal)
		if ev.FilesDone > maxDone {
			maxDone = ev.FilesDone
		}
	}
	assert.Equal(t, 4, maxDone)
}

func TestEncodeAll_CanceledContext(t *testing.T) {
	t.Parallel()

	tiles, err := Slice(testutil.GradientImage(40, 40), 2, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = EncodeAll(ctx, tiles)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeAll_NoTiles(t *testing.T) {
	t.Parallel()

	entries, err := EncodeAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured int
		tiles      int
		want       int
	}{
		{"serial when negative", -1, 9, 1},
		{"single tile stays serial", 4, 1, 1},
		{"clamped to tile count", 16, 4, 4},
		{"fixed count", 3, 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, workerCount(tt.configured, tt.tiles))
		})
	}
}
