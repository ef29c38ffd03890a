package gridzip

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/gridzip/internal/crc32"
)

// buildFixture assembles the two-entry archive used across inspection
// tests: 100 bytes under piece_0_0.png, 50 bytes under piece_0_1.png.
func buildFixture(t *testing.T) ([]byte, []Entry) {
	t.Helper()
	entries := []Entry{
		{Name: "piece_0_0.png", Data: testData(t, 20, 100)},
		{Name: "piece_0_1.png", Data: testData(t, 21, 50)},
	}
	archive, err := Build(entries)
	require.NoError(t, err)
	return archive, entries
}

func TestInspect_ListsEntries(t *testing.T) {
	t.Parallel()

	archive, entries := buildFixture(t)
	result, err := Inspect(archive)
	require.NoError(t, err)

	require.Equal(t, 2, result.Len())
	infos := result.Entries()
	for i, info := range infos {
		assert.Equal(t, entries[i].Name, info.Name)
		assert.Equal(t, uint32(len(entries[i].Data)), info.Size)
		assert.Equal(t, crc32.Checksum(entries[i].Data), info.CRC32)
	}
	assert.Equal(t, uint32(0), infos[0].LocalOffset)
	assert.Equal(t, uint32(143), infos[1].LocalOffset)
}

func TestInspect_Stats(t *testing.T) {
	t.Parallel()

	archive, _ := buildFixture(t)
	result, err := Inspect(archive)
	require.NoError(t, err)

	assert.Equal(t, 376, result.ArchiveSize())
	assert.Equal(t, uint64(150), result.TotalDataBytes())
	// Cached on second call.
	assert.Equal(t, uint64(150), result.TotalDataBytes())
}

func TestInspect_AcceptsForeignStoredArchive(t *testing.T) {
	t.Parallel()

	// An archive produced by a different writer, stored entries only.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "foreign.txt", Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte("written elsewhere"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	result, err := Inspect(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "foreign.txt", result.Entries()[0].Name)
	assert.Equal(t, uint32(len("written elsewhere")), result.Entries()[0].Size)
}

func TestInspect_RejectsCompressedArchive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("compressed.txt")
	require.NoError(t, err)
	_, err = w.Write(bytes.Repeat([]byte("abcdefgh"), 512))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Inspect(buf.Bytes())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestInspect_RejectsDamagedInput(t *testing.T) {
	t.Parallel()

	t.Run("not an archive", func(t *testing.T) {
		t.Parallel()
		_, err := Inspect(bytes.Repeat([]byte{0xAA}, 100))
		assert.ErrorIs(t, err, ErrNotArchive)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := Inspect(nil)
		assert.ErrorIs(t, err, ErrNotArchive)
	})

	t.Run("truncated tail", func(t *testing.T) {
		t.Parallel()
		archive, _ := buildFixture(t)
		_, err := Inspect(archive[:len(archive)-30])
		assert.ErrorIs(t, err, ErrNotArchive)
	})

	t.Run("central size extends past end record", func(t *testing.T) {
		t.Parallel()
		archive, _ := buildFixture(t)
		size := binary.LittleEndian.Uint32(archive[len(archive)-10:])
		binary.LittleEndian.PutUint32(archive[len(archive)-10:], size+1)
		_, err := Inspect(archive)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("entry count mismatch", func(t *testing.T) {
		t.Parallel()
		archive, _ := buildFixture(t)
		binary.LittleEndian.PutUint16(archive[len(archive)-14:], 3)
		binary.LittleEndian.PutUint16(archive[len(archive)-12:], 3)
		_, err := Inspect(archive)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestVerify_CleanArchive(t *testing.T) {
	t.Parallel()

	archive, _ := buildFixture(t)
	assert.NoError(t, Verify(archive))
}

func TestVerify_DetectsFlippedDataByte(t *testing.T) {
	t.Parallel()

	archive, _ := buildFixture(t)
	// First entry's data starts after its 43-byte local record.
	archive[43] ^= 0xFF
	assert.ErrorIs(t, Verify(archive), ErrChecksum)
}

func TestVerify_DetectsTamperedLocalHeader(t *testing.T) {
	t.Parallel()

	archive, _ := buildFixture(t)
	// Overwrite one byte of the first entry's name in the local
	// header; the central record keeps the original.
	archive[30] = 'x'
	assert.ErrorIs(t, Verify(archive), ErrCorrupt)
}

func TestVerify_RejectsStreamedArchive(t *testing.T) {
	t.Parallel()

	// Streaming writers record zeros in the local header and put the
	// real values in a trailing data descriptor, a shape this module
	// never produces.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "streamed.txt", Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte("descriptor follows"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	assert.ErrorIs(t, Verify(buf.Bytes()), ErrCorrupt)
}
