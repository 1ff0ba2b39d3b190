package utils

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns %APPDATA%\AutoCorrectPro.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "AutoCorrectPro"), nil
}
