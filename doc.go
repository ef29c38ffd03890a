// Package gridzip assembles named byte buffers into ZIP archives held
// entirely in memory.
//
// The package implements the container format directly rather than
// depending on an archiving library: entries are stored uncompressed
// with zeroed timestamps, which makes output deterministic and keeps
// the writer small enough to reason about byte by byte. Archives it
// produces open in any standard ZIP tool.
//
// The [tile] and [compose] subpackages cover the surrounding pipeline:
// rendering a source image onto a canvas, cutting it into grid pieces,
// and encoding the pieces as PNG entries ready for [Build].
//
// # Quick Start
//
// Assemble and save an archive:
//
//	entries := []gridzip.Entry{
//	    {Name: "piece_0_0.png", Data: topLeft},
//	    {Name: "piece_0_1.png", Data: topRight},
//	}
//	archive, err := gridzip.Build(entries)
//	if err != nil {
//	    return err
//	}
//	err = gridzip.Save("grid.zip", archive)
//
// Read back the table of contents and check integrity:
//
//	result, err := gridzip.Inspect(archive)
//	if err != nil {
//	    return err
//	}
//	for _, e := range result.Entries() {
//	    fmt.Println(e.Name, e.Size)
//	}
//	err = gridzip.Verify(archive)
//
// # Progress and Logging
//
// Long operations accept options for observability:
//
//	archive, err := gridzip.Build(entries,
//	    gridzip.BuildWithLogger(slog.Default()),
//	    gridzip.BuildWithProgress(func(ev gridzip.ProgressEvent) {
//	        fmt.Printf("%s %d/%d\n", ev.Stage, ev.FilesDone, ev.FilesTotal)
//	    }),
//	)
package gridzip
