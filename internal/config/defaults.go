package config

// DefaultConfig returns the configuration used when no config.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Grid: GridConfig{
			Rows:        3,
			Cols:        3,
			NamePattern: "piece_%d_%d.png",
		},
		Canvas: CanvasConfig{
			Enabled:    false,
			Size:       1080,
			Background: "#ffffff",
			AutoCenter: false,
		},
		Output: OutputConfig{
			Path: "grid.zip",
		},
	}
}
