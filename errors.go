package gridzip

import (
	"errors"

	"github.com/meigma/gridzip/internal/zipfmt"
)

// Sentinel errors for archive assembly.
var (
	// ErrNameTooLong is returned when an entry name exceeds the 16-bit
	// name length field of the format (65535 bytes of UTF-8).
	ErrNameTooLong = errors.New("gridzip: entry name too long")

	// ErrNilData is returned when an entry carries a nil data buffer.
	// A zero-length buffer is a valid empty entry; nil is a caller bug.
	ErrNilData = errors.New("gridzip: entry data is nil")

	// ErrTooManyEntries is returned when the entry count exceeds the
	// 16-bit entry count field of the end record (65535 entries).
	ErrTooManyEntries = errors.New("gridzip: too many entries")

	// ErrSizeOverflow is returned when an entry size, the central
	// directory, or an offset exceeds the 32-bit fields of the format.
	ErrSizeOverflow = errors.New("gridzip: size overflow")
)

// Sentinel errors for archive inspection.
var (
	// ErrNotArchive is returned when no end-of-central-directory record
	// can be located in the input.
	ErrNotArchive = zipfmt.ErrNoEndRecord

	// ErrCorrupt is returned when a record is truncated, misplaced, or
	// carries a wrong signature.
	ErrCorrupt = zipfmt.ErrCorrupt

	// ErrUnsupported is returned for valid ZIP features this module does
	// not produce, such as compressed entries or multi-disk archives.
	ErrUnsupported = zipfmt.ErrUnsupported

	// ErrChecksum is returned by Verify when stored data does not match
	// its recorded CRC-32.
	ErrChecksum = errors.New("gridzip: checksum mismatch")
)
