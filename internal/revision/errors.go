package revision

import (
	"errors"
	"fmt"

	"github.com/roach88/recalc/internal/rev"
)

// ErrorCode categorizes transition failures.
type ErrorCode string

const (
	// CodeStorageIO indicates backup or artifact I/O failed.
	CodeStorageIO ErrorCode = "STORAGE_IO"

	// CodeValidationFailed indicates the candidate was rejected before commit.
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// CodeNotFound indicates the revert target id does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeBusy indicates a concurrent request was rejected.
	CodeBusy ErrorCode = "BUSY"

	// CodeCorruption indicates content could not be read back intact.
	CodeCorruption ErrorCode = "CORRUPTION"
)

// TransitionError is the structured failure report of a transition.
//
// It carries enough context for manual recovery: the state at which the
// failure occurred and the ids of any backups already created. The core
// never retries automatically - self-modification is rare enough that
// automatic retry risks masking a real problem.
type TransitionError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// State is the state machine position at which the failure occurred.
	State State

	// Token identifies the transition attempt in the journal.
	Token string

	// BackupIDs lists backups created before the failure, in creation
	// order. A PRE backup listed here remains valid for manual recovery.
	BackupIDs []rev.ID

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %v (state=%s, token=%s)", e.Code, e.Err, e.State, e.Token)
}

// Unwrap exposes the underlying error so rev.IsValidation, rev.IsBusy
// and friends see through the transition wrapper.
func (e *TransitionError) Unwrap() error { return e.Err }

// CodeFor maps an underlying error to its transition error code.
func CodeFor(err error) ErrorCode {
	switch {
	case rev.IsValidation(err):
		return CodeValidationFailed
	case rev.IsNotFound(err):
		return CodeNotFound
	case rev.IsBusy(err):
		return CodeBusy
	case rev.IsCorruption(err):
		return CodeCorruption
	default:
		return CodeStorageIO
	}
}

// AsTransitionError extracts a TransitionError from an error chain.
func AsTransitionError(err error) (*TransitionError, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
