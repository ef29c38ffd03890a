package tile

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/gridzip"
)

// DefaultNamePattern names pieces by grid position.
const DefaultNamePattern = "piece_%d_%d.png"

// encodeConfig holds configuration for PNG encoding.
type encodeConfig struct {
	workers  int // 0 = auto, <0 = serial, >0 = fixed count
	pattern  string
	level    png.CompressionLevel
	logger   *slog.Logger
	progress gridzip.ProgressFunc
}

// EncodeOption configures EncodeAll.
type EncodeOption func(*encodeConfig)

// EncodeWithWorkers sets the number of concurrent encoders.
// Values < 0 force serial encoding. Zero uses GOMAXPROCS.
func EncodeWithWorkers(n int) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.workers = n
	}
}

// EncodeWithNamePattern sets the fmt pattern entry names are built
// from. The pattern receives the piece's row and column as two %d
// verbs; the default is DefaultNamePattern.
func EncodeWithNamePattern(pattern string) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.pattern = pattern
	}
}

// EncodeWithCompressionLevel sets the PNG compression level.
// The zero value is the encoder's default level.
func EncodeWithCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.level = level
	}
}

// EncodeWithLogger sets the logger for encoding operations.
// Logging is disabled by default.
func EncodeWithLogger(logger *slog.Logger) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.logger = logger
	}
}

// EncodeWithProgress sets a callback fired once per encoded piece with
// StageEncoding.
func EncodeWithProgress(fn gridzip.ProgressFunc) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.progress = fn
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (cfg *encodeConfig) log() *slog.Logger {
	if cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.logger
}

// reportProgress sends a progress event if a callback is configured.
func (cfg *encodeConfig) reportProgress(name string, bytesDone uint64, filesDone, filesTotal int) {
	if cfg.progress == nil {
		return
	}
	cfg.progress(gridzip.ProgressEvent{
		Stage:      gridzip.StageEncoding,
		Name:       name,
		BytesDone:  bytesDone,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}

// EncodeAll encodes tiles to PNG concurrently and returns archive
// entries in tile order.
//
// Entry names are derived from each tile's grid position. Output is
// deterministic regardless of worker count. The context cancels
// outstanding work; on error or cancellation no entries are returned.
func EncodeAll(ctx context.Context, tiles []Tile, opts ...EncodeOption) ([]gridzip.Entry, error) {
	cfg := encodeConfig{pattern: DefaultNamePattern}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.pattern == "" {
		cfg.pattern = DefaultNamePattern
	}

	workers := workerCount(cfg.workers, len(tiles))
	cfg.log().Info("encoding pieces", "count", len(tiles), "workers", workers)

	entries := make([]gridzip.Entry, len(tiles))
	enc := &png.Encoder{CompressionLevel: cfg.level}
	var filesDone atomic.Int64
	var bytesDone atomic.Uint64

	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		eg.Go(func() error {
			for i := w; i < len(tiles); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				piece := &tiles[i]
				name := fmt.Sprintf(cfg.pattern, piece.Row, piece.Col)

				var buf bytes.Buffer
				if err := enc.Encode(&buf, piece.Image); err != nil {
					return fmt.Errorf("encode %s: %w", name, err)
				}
				entries[i] = gridzip.Entry{Name: name, Data: buf.Bytes()}

				done := int(filesDone.Add(1))
				total := bytesDone.Add(uint64(buf.Len())) //nolint:gosec // buffer length is non-negative
				cfg.reportProgress(name, total, done, len(tiles))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cfg.log().Debug("pieces encoded", "count", len(tiles), "bytes", bytesDone.Load())
	return entries, nil
}

// workerCount determines the number of concurrent encoders.
func workerCount(configured, tiles int) int {
	if tiles < 2 || configured < 0 {
		return 1
	}
	workers := configured
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > tiles {
		workers = tiles
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
