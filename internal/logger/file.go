package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/extsort/internal/filelock"
)

// DefaultLogFile is the log file written in the working directory when no
// other path is configured.
const DefaultLogFile = "log"

// FileLogger appends log lines to a persistent log file.
// The file is never truncated, so it accumulates entries across runs.
// Each line is written under an advisory lock on "<path>.lock" so that
// concurrent extsort processes sharing one log file never interleave.
type FileLogger struct {
	path     string
	file     *os.File
	lock     *filelock.FileLock
	logLevel string
	mu       sync.Mutex
	now      func() time.Time
}

// NewFileLogger opens (or creates) the log file at path for appending.
// Missing parent directories are created.
func NewFileLogger(path string, logLevel string) (*FileLogger, error) {
	if path == "" {
		path = DefaultLogFile
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLogger{
		path:     path,
		file:     file,
		lock:     filelock.ForFile(path),
		logLevel: normalizeLogLevel(logLevel),
		now:      time.Now,
	}, nil
}

// Path returns the log file path.
func (fl *FileLogger) Path() string {
	return fl.path
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !shouldLog(fl.logLevel, level) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", fl.now().Format(timestampLayout), level, message)
	fl.write(formatted)
}

// write is the thread-safe helper that appends one line to the log file.
// Write failures are dropped: logging must never abort a copy.
func (fl *FileLogger) write(line string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return
	}

	_ = fl.lock.WithLock(func() error {
		if _, err := fl.file.WriteString(line); err != nil {
			return err
		}
		// Flush after each write for real-time logging
		return fl.file.Sync()
	})
}

// Close flushes and closes the log file and releases the lock descriptor.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return nil
	}

	if err := fl.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := fl.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	fl.file = nil

	return fl.lock.Close()
}
