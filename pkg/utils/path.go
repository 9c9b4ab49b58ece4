package utils

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename strips any directory components from a client-supplied
// filename, leaving a bare file name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

// IsWithinBase checks that path resolves inside the base directory after
// cleaning, guarding the download handler against traversal.
func IsWithinBase(base, path string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
