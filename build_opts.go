package gridzip

import "log/slog"

// buildConfig holds configuration for archive assembly.
type buildConfig struct {
	logger   *slog.Logger
	progress ProgressFunc
}

// BuildOption configures archive assembly.
type BuildOption func(*buildConfig)

// BuildWithLogger sets the logger for assembly operations.
// Logging is disabled by default.
func BuildWithLogger(logger *slog.Logger) BuildOption {
	return func(cfg *buildConfig) {
		cfg.logger = logger
	}
}

// BuildWithProgress sets a callback for assembly progress updates.
// The callback fires once per entry and once when the archive is
// complete, always with StageArchiving.
func BuildWithProgress(fn ProgressFunc) BuildOption {
	return func(cfg *buildConfig) {
		cfg.progress = fn
	}
}
