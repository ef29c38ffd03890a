// Package config defines the gridzip configuration file (config.yaml)
// and its load/save helpers.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the top-level gridzip configuration (config.yaml).
type Config struct {
	Version int          `yaml:"version"`
	Grid    GridConfig   `yaml:"grid"`
	Canvas  CanvasConfig `yaml:"canvas"`
	Output  OutputConfig `yaml:"output"`
}

// GridConfig controls how the source image is cut into pieces.
type GridConfig struct {
	Rows        int    `yaml:"rows"`
	Cols        int    `yaml:"cols"`
	NamePattern string `yaml:"name_pattern,omitempty"`
}

// CanvasConfig controls the optional composition pass that places the
// source image onto a square canvas before slicing.
type CanvasConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Size       int    `yaml:"size,omitempty"`
	Background string `yaml:"background,omitempty"`
	AutoCenter bool   `yaml:"auto_center,omitempty"`
}

// OutputConfig controls where the archive is written.
type OutputConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Count returns the number of pieces the grid produces.
func (g GridConfig) Count() int {
	return g.Rows * g.Cols
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if p := c.Grid.NamePattern; p != "" && strings.Count(p, "%d") != 2 {
		return fmt.Errorf("name pattern %q must contain exactly two %%d verbs", p)
	}
	if c.Canvas.Enabled && c.Canvas.Size < 1 {
		return errors.New("canvas size must be at least 1")
	}
	return nil
}
