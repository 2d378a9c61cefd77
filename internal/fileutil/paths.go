package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrSourceNotFound is returned when the source path does not exist.
	ErrSourceNotFound = errors.New("source path does not exist")
	// ErrSourceNotDir is returned when the source path is not a directory.
	ErrSourceNotDir = errors.New("source path is not a directory")
)

// ValidateSource confirms that path exists and is a directory.
// Symbolic links are followed.
func ValidateSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return fmt.Errorf("failed to access source %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, path)
	}
	return nil
}

// EnsureDir creates path and any missing parents.
// An existing directory is success, which makes it safe to call
// concurrently for the same path.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// IsWithin reports whether path is root or lies beneath it.
// Both sides are compared with symlinks resolved.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(canonical(root), canonical(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// canonical returns path made absolute with symlinks resolved where possible.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
