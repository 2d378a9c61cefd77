package models

import "time"

// FileEntry is a regular file discovered under the source tree.
type FileEntry struct {
	Path string // Full path as produced by the walk
	Name string // Base name, used as the target file name
}

// CopyResult captures the outcome of copying a single file.
type CopyResult struct {
	Source   string
	Target   string
	Label    string // Extension label the file was routed by
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the copy completed without error.
func (r CopyResult) Succeeded() bool {
	return r.Err == nil
}

// SortResult aggregates the outcome of one sorting run.
type SortResult struct {
	RunID       string
	Source      string
	Destination string
	Discovered  int // Regular files handed to the copy pool
	Copied      int
	Failed      int
	Skipped     int // Walk entries that could not be inspected
	Duration    time.Duration
	Failures    []CopyResult
}

// Record folds a single copy outcome into the aggregate.
func (r *SortResult) Record(result CopyResult) {
	if result.Succeeded() {
		r.Copied++
		return
	}
	r.Failed++
	r.Failures = append(r.Failures, result)
}

// Status summarizes the run as SUCCESS, PARTIAL, FAILED or EMPTY.
func (r *SortResult) Status() string {
	switch {
	case r.Discovered == 0:
		return "EMPTY"
	case r.Failed == 0:
		return "SUCCESS"
	case r.Copied == 0:
		return "FAILED"
	default:
		return "PARTIAL"
	}
}
