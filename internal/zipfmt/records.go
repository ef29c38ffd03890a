// Package zipfmt encodes and decodes the three record types that make
// up a ZIP container: the local file header preceding each entry's
// data, the central directory record describing each entry, and the
// end-of-central-directory record that terminates the archive.
//
// Only the subset of the format produced by this module is supported:
// single-disk archives with stored (uncompressed) entries, no extra
// fields, and zeroed timestamps. All multi-byte fields are
// little-endian.
package zipfmt

import "encoding/binary"

// Record signatures. Each starts with the "PK" marker bytes.
const (
	LocalHeaderSignature     uint32 = 0x04034b50
	CentralRecordSignature   uint32 = 0x02014b50
	EndOfCentralDirSignature uint32 = 0x06054b50
)

// Fixed encoded sizes, excluding variable-length name, extra, and
// comment bytes.
const (
	LocalHeaderSize     = 30
	CentralRecordSize   = 46
	EndOfCentralDirSize = 22
)

// extractVersion is the minimum format version needed to extract a
// stored entry (2.0).
const extractVersion = 20

// MethodStored is the compression method for entries stored verbatim.
const MethodStored uint16 = 0

// LocalHeader is the record placed immediately before an entry's data.
//
// The zero Method is MethodStored; the builder writes both size fields
// with the same value since stored entries are not transformed.
type LocalHeader struct {
	Name             string
	Method           uint16
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
}

// EncodedSize returns the number of bytes Encode produces.
func (h *LocalHeader) EncodedSize() int {
	return LocalHeaderSize + len(h.Name)
}

// Encode serializes the header followed by the name bytes. Flag,
// timestamp, and extra-field bytes are left zero. The name must fit
// the 16-bit length field; callers validate this before encoding.
func (h *LocalHeader) Encode() []byte {
	buf := make([]byte, h.EncodedSize())
	binary.LittleEndian.PutUint32(buf[0:4], LocalHeaderSignature)
	binary.LittleEndian.PutUint16(buf[4:6], extractVersion)
	binary.LittleEndian.PutUint16(buf[8:10], h.Method)
	binary.LittleEndian.PutUint32(buf[14:18], h.CRC32)
	binary.LittleEndian.PutUint32(buf[18:22], h.CompressedSize)
	binary.LittleEndian.PutUint32(buf[22:26], h.UncompressedSize)
	binary.LittleEndian.PutUint16(buf[26:28], uint16(len(h.Name))) //nolint:gosec // validated by the builder
	copy(buf[LocalHeaderSize:], h.Name)
	return buf
}

// CentralRecord is one entry's record in the central directory. It
// repeats the local header fields and adds the offset of that header
// from the start of the archive.
type CentralRecord struct {
	Name             string
	Method           uint16
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
	LocalOffset      uint32
}

// EncodedSize returns the number of bytes Encode produces.
func (r *CentralRecord) EncodedSize() int {
	return CentralRecordSize + len(r.Name)
}

// Encode serializes the record followed by the name bytes. Comment,
// disk, and attribute fields are left zero.
func (r *CentralRecord) Encode() []byte {
	buf := make([]byte, r.EncodedSize())
	binary.LittleEndian.PutUint32(buf[0:4], CentralRecordSignature)
	binary.LittleEndian.PutUint16(buf[4:6], extractVersion)
	binary.LittleEndian.PutUint16(buf[6:8], extractVersion)
	binary.LittleEndian.PutUint16(buf[10:12], r.Method)
	binary.LittleEndian.PutUint32(buf[16:20], r.CRC32)
	binary.LittleEndian.PutUint32(buf[20:24], r.CompressedSize)
	binary.LittleEndian.PutUint32(buf[24:28], r.UncompressedSize)
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(r.Name))) //nolint:gosec // validated by the builder
	binary.LittleEndian.PutUint32(buf[42:46], r.LocalOffset)
	copy(buf[CentralRecordSize:], r.Name)
	return buf
}

// EndOfCentralDir terminates the archive and locates the central
// directory within it.
type EndOfCentralDir struct {
	EntryCount    uint16
	CentralSize   uint32
	CentralOffset uint32
}

// Encode serializes the record. Disk numbers and the comment length
// are left zero, and the per-disk entry count mirrors the total.
func (e *EndOfCentralDir) Encode() []byte {
	buf := make([]byte, EndOfCentralDirSize)
	binary.LittleEndian.PutUint32(buf[0:4], EndOfCentralDirSignature)
	binary.LittleEndian.PutUint16(buf[8:10], e.EntryCount)
	binary.LittleEndian.PutUint16(buf[10:12], e.EntryCount)
	binary.LittleEndian.PutUint32(buf[12:16], e.CentralSize)
	binary.LittleEndian.PutUint32(buf[16:20], e.CentralOffset)
	return buf
}
