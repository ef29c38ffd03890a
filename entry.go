package gridzip

import "fmt"

// Entry is one named byte buffer destined for an archive.
type Entry struct {
	// Name is the file name recorded in the archive, stored as raw
	// UTF-8. Callers are responsible for keeping names unique within
	// one archive; Build writes duplicates as given.
	Name string

	// Data is the entry's content. It is read but never modified
	// during assembly. An empty (non-nil) buffer produces a valid
	// zero-length entry.
	Data []byte
}

// Field limits imposed by the 16-bit counts of the format.
const (
	// maxNameLen is the largest name the name length field can record.
	maxNameLen = 0xFFFF

	// MaxEntries is the largest number of entries one archive can hold.
	MaxEntries = 0xFFFF
)

// maxFieldValue is the largest value the 32-bit size and offset fields
// can record.
const maxFieldValue = 0xFFFFFFFF

// validate reports whether the entry can be represented in the format.
func (e *Entry) validate() error {
	if len(e.Name) > maxNameLen {
		return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(e.Name))
	}
	if e.Data == nil {
		return fmt.Errorf("%w: %q", ErrNilData, e.Name)
	}
	if uint64(len(e.Data)) > maxFieldValue {
		return fmt.Errorf("%w: %q is %d bytes", ErrSizeOverflow, e.Name, len(e.Data))
	}
	return nil
}
