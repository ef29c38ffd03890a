package gridzip

import (
	"fmt"
	"log/slog"

	"github.com/meigma/gridzip/internal/crc32"
	"github.com/meigma/gridzip/internal/zipfmt"
)

// Build assembles entries into a complete ZIP archive held in memory.
//
// Entries are stored uncompressed in input order. The archive is laid
// out in three parts: each entry's local header followed by its data,
// then one central directory record per entry, then the
// end-of-central-directory record. The result is self-contained and
// readable by standard ZIP tools.
//
// Build is deterministic: the same entries always produce
// byte-identical output, since headers carry no timestamps. Entry data
// is never modified, no state survives the call, and concurrent calls
// are independent.
//
// Name uniqueness is the caller's responsibility; duplicates are
// written as given. Build returns ErrNameTooLong, ErrNilData,
// ErrTooManyEntries, or ErrSizeOverflow when an entry or the assembled
// archive cannot be represented in the format's 16- and 32-bit fields.
func Build(entries []Entry, opts ...BuildOption) ([]byte, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &builder{cfg: cfg}
	b.log().Info("assembling archive", "entries", len(entries))

	if len(entries) > MaxEntries {
		return nil, fmt.Errorf("%w: %d", ErrTooManyEntries, len(entries))
	}
	for i := range entries {
		if err := entries[i].validate(); err != nil {
			return nil, err
		}
	}

	records, local, err := b.writeLocal(entries)
	if err != nil {
		return nil, err
	}
	b.log().Debug("entry data written", "entries", len(records), "bytes", len(local))

	central, err := b.writeCentral(records)
	if err != nil {
		return nil, err
	}
	b.log().Debug("central directory written", "bytes", len(central))

	end := zipfmt.EndOfCentralDir{
		EntryCount:    uint16(len(entries)), //nolint:gosec // bounded by MaxEntries
		CentralSize:   uint32(len(central)), //nolint:gosec // bounded in writeCentral
		CentralOffset: uint32(len(local)),   //nolint:gosec // bounded in writeLocal
	}
	archive := zipfmt.Concat(local, central, end.Encode())

	b.reportProgress(StageArchiving, "", uint64(len(archive)), len(entries), len(entries))
	b.log().Info("archive assembled", "entries", len(entries), "size", len(archive))
	return archive, nil
}

// builder holds state for one archive assembly.
type builder struct {
	cfg buildConfig
}

// reportProgress sends a progress event if a callback is configured.
func (b *builder) reportProgress(stage ProgressStage, name string, bytesDone uint64, filesDone, filesTotal int) {
	if b.cfg.progress == nil {
		return
	}
	b.cfg.progress(ProgressEvent{
		Stage:      stage,
		Name:       name,
		BytesDone:  bytesDone,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}

// log returns the logger, falling back to a discard logger if nil.
func (b *builder) log() *slog.Logger {
	if b.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.cfg.logger
}

// entryRecord carries one entry's derived header values between the
// local and central phases.
type entryRecord struct {
	name        string
	crc32       uint32
	size        uint32
	localOffset uint32
}

// writeLocal encodes each entry's local header followed by its data,
// recording the offset each header lands on. The offset accumulator
// starts at zero and advances by the encoded header length plus the
// data length per entry; it is captured before the entry is appended
// so the central directory can point back at the header.
func (b *builder) writeLocal(entries []Entry) ([]entryRecord, []byte, error) {
	records := make([]entryRecord, 0, len(entries))
	local := make([]byte, 0, localSizeHint(entries))
	var offset uint64
	for i := range entries {
		e := &entries[i]
		size := uint32(len(e.Data)) //nolint:gosec // bounded in validate
		hdr := zipfmt.LocalHeader{
			Name:             e.Name,
			CRC32:            crc32.Checksum(e.Data),
			CompressedSize:   size,
			UncompressedSize: size,
		}
		records = append(records, entryRecord{
			name:        e.Name,
			crc32:       hdr.CRC32,
			size:        size,
			localOffset: uint32(offset), //nolint:gosec // checked at end of previous iteration
		})
		local = append(local, hdr.Encode()...)
		local = append(local, e.Data...)
		offset += uint64(hdr.EncodedSize()) + uint64(size)
		if offset > maxFieldValue {
			return nil, nil, fmt.Errorf("%w: archive exceeds 4GiB at entry %q", ErrSizeOverflow, e.Name)
		}
		b.reportProgress(StageArchiving, e.Name, offset, i+1, len(entries))
	}
	return records, local, nil
}

// localSizeHint pre-sizes the local section buffer.
func localSizeHint(entries []Entry) int {
	total := 0
	for i := range entries {
		total += zipfmt.LocalHeaderSize + len(entries[i].Name) + len(entries[i].Data)
	}
	return total
}

// writeCentral encodes one central directory record per entry, in the
// same order the entries were written.
func (b *builder) writeCentral(records []entryRecord) ([]byte, error) {
	size := 0
	for i := range records {
		size += zipfmt.CentralRecordSize + len(records[i].name)
	}
	central := make([]byte, 0, size)
	for i := range records {
		r := &records[i]
		rec := zipfmt.CentralRecord{
			Name:             r.name,
			CRC32:            r.crc32,
			CompressedSize:   r.size,
			UncompressedSize: r.size,
			LocalOffset:      r.localOffset,
		}
		central = append(central, rec.Encode()...)
	}
	if uint64(len(central)) > maxFieldValue {
		return nil, fmt.Errorf("%w: central directory", ErrSizeOverflow)
	}
	return central, nil
}
