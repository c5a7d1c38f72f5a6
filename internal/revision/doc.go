// Package revision orchestrates the transition protocol: the only code
// path through which the live artifact ever changes.
//
// Every state-changing operation is bracketed by a pre-snapshot (so it
// is always undoable) and, on success, a post-snapshot (so the new state
// is itself a recoverable checkpoint). The history is therefore a hard
// append-only log from which any prior artifact state is recoverable by
// id, independent of how many transitions followed.
//
// # State machine
//
//	IDLE -> BACKING_UP_PRE -> VALIDATING -> COMMITTING -> BACKING_UP_POST -> DONE
//	IDLE -> BACKING_UP_PRE -> REVERTING  -> BACKING_UP_POST -> DONE
//
// Any step may divert to FAILED; DONE and FAILED both return control to
// IDLE for the next request.
//
// # Single-writer model
//
// The controller processes at most one transition at a time. A request
// arriving while the controller is not IDLE fails immediately with
// rev.BusyError rather than queuing: self-modification is a rare,
// user-initiated foreground action, not a pipeline needing throughput.
//
// Once COMMITTING has begun the transition cannot be cancelled - the
// atomic rename either completes or fails atomically. Earlier states may
// be abandoned freely since nothing observable has changed yet.
package revision
