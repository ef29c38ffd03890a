package main

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/meigma/gridzip"
)

// progressPrinter renders progress events on a single stderr line.
// Events may arrive from multiple goroutines.
type progressPrinter struct {
	mu      sync.Mutex
	active  bool
	started bool
}

// newProgressPrinter returns a printer, or nil when stderr is not a
// terminal so piped output stays clean.
func newProgressPrinter() *progressPrinter {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return &progressPrinter{active: true}
}

// Report implements gridzip.ProgressFunc.
func (p *progressPrinter) Report(ev gridzip.ProgressEvent) {
	if p == nil || !p.active {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = true

	var line string
	switch {
	case ev.FilesTotal > 0:
		line = fmt.Sprintf("%s %d/%d", ev.Stage, ev.FilesDone, ev.FilesTotal)
	case ev.BytesDone > 0:
		line = fmt.Sprintf("%s %d bytes", ev.Stage, ev.BytesDone)
	default:
		line = fmt.Sprintf("%s...", ev.Stage)
	}
	// Pad so a shorter line fully overwrites the previous one.
	fmt.Fprintf(os.Stderr, "\r%-30s", line)
}

// Done terminates the progress line once rendering is finished.
func (p *progressPrinter) Done() {
	if p == nil || !p.active {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		fmt.Fprintln(os.Stderr)
		p.started = false
	}
}

// Func returns the printer's report callback, or nil for a nil printer
// so callers can pass it straight to option constructors.
func (p *progressPrinter) Func() gridzip.ProgressFunc {
	if p == nil {
		return nil
	}
	return p.Report
}
