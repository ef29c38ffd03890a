package gridzip

import (
	"fmt"
	"sync"

	"github.com/meigma/gridzip/internal/crc32"
	"github.com/meigma/gridzip/internal/zipfmt"
)

// EntryInfo describes one archived entry as recorded in the central
// directory.
type EntryInfo struct {
	// Name is the entry name, raw UTF-8 as stored.
	Name string

	// Size is the entry's data length in bytes.
	Size uint32

	// CRC32 is the recorded checksum of the data.
	CRC32 uint32

	// LocalOffset is where the entry's local header starts, measured
	// from the beginning of the archive.
	LocalOffset uint32
}

// InspectResult contains metadata about an assembled archive.
//
// It is produced by parsing the central directory only; entry data is
// not touched. Use Verify to check data against the recorded checksums.
type InspectResult struct {
	entries     []EntryInfo
	archiveSize int

	// Lazy computed stats
	statsOnce      sync.Once
	totalDataBytes uint64
}

// Entries returns the entries in central directory order.
func (r *InspectResult) Entries() []EntryInfo {
	return r.entries
}

// Len returns the number of entries.
func (r *InspectResult) Len() int {
	return len(r.entries)
}

// ArchiveSize returns the total archive length in bytes.
func (r *InspectResult) ArchiveSize() int {
	return r.archiveSize
}

// TotalDataBytes returns the sum of all entry data sizes.
// This iterates all entries on first call; the result is cached.
func (r *InspectResult) TotalDataBytes() uint64 {
	r.statsOnce.Do(func() {
		for i := range r.entries {
			r.totalDataBytes += uint64(r.entries[i].Size)
		}
	})
	return r.totalDataBytes
}

// Inspect parses the central directory of an assembled archive.
//
// Only the shape this module produces is accepted: a single-disk
// archive of stored entries. Compressed entries return ErrUnsupported;
// structural damage returns ErrCorrupt; input without an
// end-of-central-directory record returns ErrNotArchive.
func Inspect(archive []byte) (*InspectResult, error) {
	end, endOff, err := zipfmt.FindEndOfCentralDir(archive)
	if err != nil {
		return nil, err
	}
	dirStart := int64(end.CentralOffset)
	dirEnd := dirStart + int64(end.CentralSize)
	if dirEnd > int64(endOff) {
		return nil, fmt.Errorf("%w: central directory extends past end record", ErrCorrupt)
	}

	entries := make([]EntryInfo, 0, end.EntryCount)
	dir := archive[dirStart:dirEnd]
	for len(dir) > 0 {
		rec, n, err := zipfmt.DecodeCentralRecord(dir)
		if err != nil {
			return nil, err
		}
		if rec.Method != zipfmt.MethodStored {
			return nil, fmt.Errorf("%w: compression method %d", ErrUnsupported, rec.Method)
		}
		if rec.CompressedSize != rec.UncompressedSize {
			return nil, fmt.Errorf("%w: stored entry %q with mismatched sizes", ErrCorrupt, rec.Name)
		}
		entries = append(entries, EntryInfo{
			Name:        rec.Name,
			Size:        rec.UncompressedSize,
			CRC32:       rec.CRC32,
			LocalOffset: rec.LocalOffset,
		})
		dir = dir[n:]
	}
	if len(entries) != int(end.EntryCount) {
		return nil, fmt.Errorf("%w: end record counts %d entries, directory holds %d", ErrCorrupt, end.EntryCount, len(entries))
	}

	return &InspectResult{entries: entries, archiveSize: len(archive)}, nil
}

// Verify checks an archive's structural integrity and data checksums.
//
// Each entry's local header is compared against its central directory
// record and the data is re-checksummed. The first inconsistency is
// returned as ErrCorrupt or ErrChecksum; nil means the whole archive
// round-trips.
func Verify(archive []byte) error {
	result, err := Inspect(archive)
	if err != nil {
		return err
	}
	for i := range result.entries {
		if err := verifyEntry(archive, &result.entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// verifyEntry cross-checks one entry's local header and data against
// its central directory record.
func verifyEntry(archive []byte, info *EntryInfo) error {
	off := int(info.LocalOffset)
	if off > len(archive) {
		return fmt.Errorf("%w: local header offset %d out of range for %q", ErrCorrupt, off, info.Name)
	}
	hdr, n, err := zipfmt.DecodeLocalHeader(archive[off:])
	if err != nil {
		return fmt.Errorf("entry %q: %w", info.Name, err)
	}
	if hdr.Method != zipfmt.MethodStored {
		return fmt.Errorf("%w: compression method %d", ErrUnsupported, hdr.Method)
	}
	if hdr.Name != info.Name {
		return fmt.Errorf("%w: local header name %q differs from central record %q", ErrCorrupt, hdr.Name, info.Name)
	}
	if hdr.CRC32 != info.CRC32 || hdr.CompressedSize != info.Size || hdr.UncompressedSize != info.Size {
		return fmt.Errorf("%w: local header fields differ from central record for %q", ErrCorrupt, info.Name)
	}

	dataStart := off + n
	dataEnd := dataStart + int(info.Size)
	if dataEnd > len(archive) {
		return fmt.Errorf("%w: data for %q extends past end of archive", ErrCorrupt, info.Name)
	}
	if got := crc32.Checksum(archive[dataStart:dataEnd]); got != info.CRC32 {
		return fmt.Errorf("%w: %q computed %08x, recorded %08x", ErrChecksum, info.Name, got, info.CRC32)
	}
	return nil
}
