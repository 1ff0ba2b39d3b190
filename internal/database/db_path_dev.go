//go:build !prod

package database

// DefaultPath keeps the development database next to the working directory
// for easy inspection.
func DefaultPath(configDir string) string {
	return fileName
}

func IsDevelopment() bool {
	return true
}
