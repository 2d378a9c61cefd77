package fileutil

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/extsort/internal/models"
)

// WalkOptions configures Walk
type WalkOptions struct {
	// Exclude holds doublestar patterns matched against the slash-separated
	// path relative to the root
	Exclude []string
	// SkipDirs lists directories that are pruned from the walk
	SkipDirs []string
}

// WalkError reports an entry that could not be inspected.
type WalkError struct {
	Path string
	Root bool // The root itself could not be read
	Err  error
}

// Error implements the error interface for WalkError.
func (e *WalkError) Error() string {
	if e.Root {
		return fmt.Sprintf("failed to walk %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("error accessing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *WalkError) Unwrap() error {
	return e.Err
}

// Walk returns a lazy sequence of the regular files under root.
// Directories are visited in lexical order. Stopping the iteration stops
// the walk. After a WalkError with Root set, nothing else is yielded.
func Walk(root string, opts WalkOptions) iter.Seq2[models.FileEntry, error] {
	return func(yield func(models.FileEntry, error) bool) {
		walkRoot := resolveRoot(root)

		skip := make(map[string]bool, len(opts.SkipDirs))
		for _, dir := range opts.SkipDirs {
			skip[canonical(dir)] = true
		}

		filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				walkErr := &WalkError{Path: path, Root: path == walkRoot, Err: err}
				if !yield(models.FileEntry{}, walkErr) || walkErr.Root {
					return filepath.SkipAll
				}
				// An unreadable directory is reported once and skipped
				return nil
			}

			if path != walkRoot && isExcluded(walkRoot, path, opts.Exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != walkRoot && len(skip) > 0 {
					if skip[canonical(path)] {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !isRegularFile(path, d) {
				return nil
			}

			if !yield(models.FileEntry{Path: path, Name: d.Name()}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// resolveRoot follows a symlinked root so that its contents are walked.
func resolveRoot(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return root
	}
	return resolved
}

// isRegularFile applies "is a regular file" semantics, following symlinks.
// Broken links and links to directories are not regular files.
func isRegularFile(path string, d fs.DirEntry) bool {
	mode := d.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func isExcluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
