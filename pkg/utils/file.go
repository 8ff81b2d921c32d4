package utils

import (
	"os"
	"strings"
)

// WriteFile writes content to a file
func WriteFile(path string, data []byte) error {
	// Security: Use 0600 permissions to restrict access to the file owner
	return os.WriteFile(path, data, 0600)
}

// SanitizeFilename removes unsafe characters from filename
func SanitizeFilename(name string) string {
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "\n", "\r"}
	for _, char := range unsafe {
		name = strings.ReplaceAll(name, char, "_")
	}
	return name
}
