// Package copier copies discovered files into their routed destination.
package copier

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/extsort/internal/logger"
	"github.com/harrison/extsort/internal/models"
	"github.com/harrison/extsort/internal/router"
)

// ErrNotRegular is returned when the source is not a regular file at copy time.
var ErrNotRegular = errors.New("not a regular file")

// TempPattern is the name pattern of the in-flight temporary files CopyFile
// creates next to its target. Walks over a tree being written should
// exclude it.
const TempPattern = ".extsort-*.tmp"

// Copier copies one file at a time into the folder chosen by its Router.
// It is safe for concurrent use; every call owns its own source and target.
type Copier struct {
	router *router.Router
	logger logger.Logger
}

// New creates a Copier. A nil logger discards messages.
func New(r *router.Router, log logger.Logger) *Copier {
	if log == nil {
		log = logger.Discard
	}
	return &Copier{router: r, logger: log}
}

// Copy routes entry by its extension and copies it into the target subfolder.
// Failures are logged and returned in the result, never propagated.
func (c *Copier) Copy(entry models.FileEntry) models.CopyResult {
	start := time.Now()
	result := models.CopyResult{Source: entry.Path}

	dir, label, err := c.router.Resolve(entry.Name)
	result.Label = label
	if err == nil {
		result.Target = filepath.Join(dir, entry.Name)
		err = CopyFile(entry.Path, result.Target)
	}
	result.Duration = time.Since(start)

	if err != nil {
		result.Err = err
		c.logger.LogError(fmt.Sprintf("Failed to copy %s: %v", entry.Path, err))
		return result
	}

	c.logger.LogInfo(fmt.Sprintf("Copied: %s -> %s", entry.Path, result.Target))
	return result
}

// CopyFile copies src to dst together with its permission bits and
// access/modification times. An existing dst is replaced. When dst is
// already the same file as src nothing is written.
//
// The content is written to a temporary file next to dst and renamed into
// place, so dst is never observed half-written and a failed copy leaves any
// previous dst untouched.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return nil
	}

	tempFile, err := os.CreateTemp(filepath.Dir(dst), TempPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure temp file is cleaned up on error
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(tempFile, in); err != nil {
		return fmt.Errorf("failed to copy content: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Chtimes(tempPath, accessTime(info), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set times: %w", err)
	}

	if err := os.Rename(tempPath, dst); err != nil {
		return fmt.Errorf("failed to move into place: %w", err)
	}

	// Success - prevent cleanup of temp file since it's now renamed
	tempFile = nil

	return nil
}
