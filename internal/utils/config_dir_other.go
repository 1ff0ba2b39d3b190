//go:build !windows

package utils

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns ~/.config on every non-Windows platform, macOS
// included, so files written by earlier releases keep being found.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
