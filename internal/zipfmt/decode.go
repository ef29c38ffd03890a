package zipfmt

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Sentinel errors for archive parsing.
var (
	// ErrNoEndRecord is returned when no end-of-central-directory
	// record can be located.
	ErrNoEndRecord = errors.New("gridzip: end of central directory not found")

	// ErrCorrupt is returned when a record is truncated or carries a
	// wrong signature.
	ErrCorrupt = errors.New("gridzip: corrupt archive")

	// ErrUnsupported is returned for valid ZIP features this module
	// does not produce, such as multi-disk archives or compression.
	ErrUnsupported = errors.New("gridzip: unsupported archive feature")
)

// maxEndRecordScan bounds the backward search for the end record. A
// trailing archive comment can push the record up to 65535 bytes away
// from the end of the file.
const maxEndRecordScan = EndOfCentralDirSize + 0xFFFF

// FindEndOfCentralDir scans archive backward for the end record and
// returns it together with its byte offset. A candidate signature only
// counts when its comment length field reaches exactly to the end of
// the archive.
func FindEndOfCentralDir(archive []byte) (EndOfCentralDir, int, error) {
	if len(archive) < EndOfCentralDirSize {
		return EndOfCentralDir{}, 0, ErrNoEndRecord
	}
	start := 0
	if len(archive) > maxEndRecordScan {
		start = len(archive) - maxEndRecordScan
	}
	for off := len(archive) - EndOfCentralDirSize; off >= start; off-- {
		if binary.LittleEndian.Uint32(archive[off:]) != EndOfCentralDirSignature {
			continue
		}
		commentLen := int(binary.LittleEndian.Uint16(archive[off+20:]))
		if off+EndOfCentralDirSize+commentLen != len(archive) {
			continue
		}
		diskNum := binary.LittleEndian.Uint16(archive[off+4:])
		dirDisk := binary.LittleEndian.Uint16(archive[off+6:])
		diskCount := binary.LittleEndian.Uint16(archive[off+8:])
		totalCount := binary.LittleEndian.Uint16(archive[off+10:])
		if diskNum != 0 || dirDisk != 0 || diskCount != totalCount {
			return EndOfCentralDir{}, 0, fmt.Errorf("%w: multi-disk archive", ErrUnsupported)
		}
		rec := EndOfCentralDir{
			EntryCount:    totalCount,
			CentralSize:   binary.LittleEndian.Uint32(archive[off+12:]),
			CentralOffset: binary.LittleEndian.Uint32(archive[off+16:]),
		}
		return rec, off, nil
	}
	return EndOfCentralDir{}, 0, ErrNoEndRecord
}

// DecodeLocalHeader parses a local file header at the start of data and
// returns it together with the number of bytes it occupies, including
// the name and any extra field.
func DecodeLocalHeader(data []byte) (LocalHeader, int, error) {
	if len(data) < LocalHeaderSize {
		return LocalHeader{}, 0, fmt.Errorf("%w: truncated local header", ErrCorrupt)
	}
	if binary.LittleEndian.Uint32(data[0:4]) != LocalHeaderSignature {
		return LocalHeader{}, 0, fmt.Errorf("%w: bad local header signature", ErrCorrupt)
	}
	nameLen := int(binary.LittleEndian.Uint16(data[26:28]))
	extraLen := int(binary.LittleEndian.Uint16(data[28:30]))
	n := LocalHeaderSize + nameLen + extraLen
	if len(data) < n {
		return LocalHeader{}, 0, fmt.Errorf("%w: truncated local header", ErrCorrupt)
	}
	h := LocalHeader{
		Name:             string(data[LocalHeaderSize : LocalHeaderSize+nameLen]),
		Method:           binary.LittleEndian.Uint16(data[8:10]),
		CRC32:            binary.LittleEndian.Uint32(data[14:18]),
		CompressedSize:   binary.LittleEndian.Uint32(data[18:22]),
		UncompressedSize: binary.LittleEndian.Uint32(data[22:26]),
	}
	return h, n, nil
}

// DecodeCentralRecord parses a central directory record at the start of
// data and returns it together with the number of bytes it occupies,
// including the name, extra field, and comment.
func DecodeCentralRecord(data []byte) (CentralRecord, int, error) {
	if len(data) < CentralRecordSize {
		return CentralRecord{}, 0, fmt.Errorf("%w: truncated central record", ErrCorrupt)
	}
	if binary.LittleEndian.Uint32(data[0:4]) != CentralRecordSignature {
		return CentralRecord{}, 0, fmt.Errorf("%w: bad central record signature", ErrCorrupt)
	}
	nameLen := int(binary.LittleEndian.Uint16(data[28:30]))
	extraLen := int(binary.LittleEndian.Uint16(data[30:32]))
	commentLen := int(binary.LittleEndian.Uint16(data[32:34]))
	n := CentralRecordSize + nameLen + extraLen + commentLen
	if len(data) < n {
		return CentralRecord{}, 0, fmt.Errorf("%w: truncated central record", ErrCorrupt)
	}
	r := CentralRecord{
		Name:             string(data[CentralRecordSize : CentralRecordSize+nameLen]),
		Method:           binary.LittleEndian.Uint16(data[10:12]),
		CRC32:            binary.LittleEndian.Uint32(data[16:20]),
		CompressedSize:   binary.LittleEndian.Uint32(data[20:24]),
		UncompressedSize: binary.LittleEndian.Uint32(data[24:28]),
		LocalOffset:      binary.LittleEndian.Uint32(data[42:46]),
	}
	return r, n, nil
}
