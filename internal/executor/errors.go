package executor

import (
	"errors"
	"fmt"
)

// SetupPhase identifies the step of a run that failed before or while
// discovering files.
type SetupPhase int

const (
	// PhaseValidate represents source path validation.
	PhaseValidate SetupPhase = iota
	// PhaseDestination represents destination directory creation.
	PhaseDestination
	// PhaseWalk represents reading the source root.
	PhaseWalk
)

// String returns the string representation of SetupPhase.
func (p SetupPhase) String() string {
	switch p {
	case PhaseValidate:
		return "validate"
	case PhaseDestination:
		return "destination"
	case PhaseWalk:
		return "walk"
	default:
		return "unknown"
	}
}

// SetupError is a fatal error that aborts a whole run.
// Per-file copy failures never produce one.
type SetupError struct {
	Phase SetupPhase
	Path  string
	Err   error
}

// Error implements the error interface for SetupError.
func (e *SetupError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Phase, e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// IsSetupError checks if the error is or wraps a SetupError in the given phase.
func IsSetupError(err error, phase SetupPhase) bool {
	var se *SetupError
	return errors.As(err, &se) && se.Phase == phase
}
