package rev

import (
	"errors"
	"fmt"
)

// IOError reports a failure of the underlying persistence layer
// (disk full, permission denied, rename failure). Always fatal to the
// current operation and always surfaced to the caller (CP-2): a
// swallowed backup failure would make revert unsafe.
type IOError struct {
	// Op names the failed operation, e.g. "snapshot", "commit".
	Op string

	// Path is the filesystem path involved, if any.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NotFoundError reports that no backup exists with the requested id.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("backup %s not found", e.ID)
}

// CorruptionError reports that content read back from storage does not
// match what was written. Treated as fatal and surfaced to the host;
// the core does not attempt automatic repair.
type CorruptionError struct {
	Path string
	Want string // expected checksum
	Got  string // observed checksum
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupted content at %s: checksum %s, expected %s", e.Path, e.Got, e.Want)
}

// ValidationError reports that a candidate was rejected before commit.
// The live artifact is untouched when this is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("candidate rejected: %s", e.Reason)
}

// BusyError reports that a transition was already in flight. The request
// is rejected immediately rather than queued; callers may retry later.
type BusyError struct {
	// State is the controller state observed at rejection time.
	State string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("transition already in progress (state=%s)", e.State)
}

// IsIO returns true if the error is (or wraps) an IOError.
func IsIO(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}

// IsNotFound returns true if the error is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsCorruption returns true if the error is (or wraps) a CorruptionError.
func IsCorruption(err error) bool {
	var e *CorruptionError
	return errors.As(err, &e)
}

// IsValidation returns true if the error is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsBusy returns true if the error is (or wraps) a BusyError.
func IsBusy(err error) bool {
	var e *BusyError
	return errors.As(err, &e)
}
