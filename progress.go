package gridzip

// ProgressEvent represents a progress update during slicing, encoding,
// or archive assembly.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Name is the entry currently being processed, if applicable.
	Name string

	// BytesDone is the number of bytes completed in the current operation.
	BytesDone uint64

	// FilesDone is the number of entries completed.
	FilesDone int

	// FilesTotal is the total number of entries.
	// Zero indicates the total is unknown.
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for the split pipeline.
const (
	// StageComposing indicates the source image is being rendered onto
	// the canvas.
	StageComposing ProgressStage = iota

	// StageSlicing indicates the canvas is being cut into grid pieces.
	StageSlicing

	// StageEncoding indicates pieces are being encoded as PNG.
	StageEncoding

	// StageArchiving indicates entries are being assembled into the archive.
	StageArchiving

	// StageSaving indicates the archive is being written to disk.
	StageSaving
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageComposing:
		return "composing"
	case StageSlicing:
		return "slicing"
	case StageEncoding:
		return "encoding"
	case StageArchiving:
		return "archiving"
	case StageSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
// Implementations must be safe for concurrent calls.
type ProgressFunc func(ProgressEvent)
