// Package filelock provides advisory file locks for coordinating writes to
// files shared between concurrent extsort processes.
package filelock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file is created at the specified path on first use.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// ForFile returns the lock guarding target, stored next to it as "<target>.lock".
func ForFile(target string) *FileLock {
	return NewFileLock(target + ".lock")
}

// Path returns the path of the lock file.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Close releases the lock if held and closes the underlying descriptor.
func (fl *FileLock) Close() error {
	if err := fl.flock.Close(); err != nil {
		return fmt.Errorf("failed to close lock on %s: %w", fl.path, err)
	}
	return nil
}

// WithLock runs fn while holding the lock.
// The lock is released even when fn returns an error.
func (fl *FileLock) WithLock(fn func() error) error {
	if err := fl.Lock(); err != nil {
		return err
	}
	defer fl.Unlock()

	return fn()
}
