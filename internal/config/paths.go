package config

import (
	"os"
	"path/filepath"
)

// ConfigFile returns the path to config.yaml, honoring the platform
// convention reported by os.UserConfigDir.
func ConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gridzip", "config.yaml"), nil
}
