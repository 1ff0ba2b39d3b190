//go:build prod

package database

import "path/filepath"

// DefaultPath stores the history beside the user's configuration file.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, fileName)
}

func IsDevelopment() bool {
	return false
}
