// Package router maps file names to the destination subfolder named after
// their extension.
package router

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/extsort/internal/fileutil"
)

// UnknownLabel is the label of files without an extension.
const UnknownLabel = "unknown"

// ExtensionLabel returns the lowercased extension of name without its dot.
// A name with no dot, a single leading dot (hidden file) or a trailing dot
// has no extension and yields UnknownLabel.
func ExtensionLabel(name string) string {
	base := filepath.Base(name)

	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return UnknownLabel
	}
	return strings.ToLower(base[i+1:])
}

// Router resolves the target subfolder for files under one destination root.
type Router struct {
	destination string
}

// New creates a Router rooted at destination.
func New(destination string) *Router {
	return &Router{destination: destination}
}

// Resolve returns the target subfolder for name, creating it if needed,
// together with the extension label it was derived from.
// Safe to call concurrently for the same label.
func (r *Router) Resolve(name string) (dir string, label string, err error) {
	label = ExtensionLabel(name)
	dir = filepath.Join(r.destination, label)

	if err := fileutil.EnsureDir(dir); err != nil {
		return "", label, fmt.Errorf("failed to prepare folder for %q: %w", label, err)
	}
	return dir, label, nil
}
