// Package session is the runtime-facing facade of the replacement core.
//
// The host (CLI, UI) talks only to a Session: request a replacement,
// request a revert, list history. The session reports an explicit
// status, the backups created, and whether the host must restart the
// live program - the core never hot-swaps executing code, it only
// manages the artifact on persistent storage.
package session

import (
	"context"

	"github.com/roach88/recalc/internal/backup"
	"github.com/roach88/recalc/internal/journal"
	"github.com/roach88/recalc/internal/rev"
	"github.com/roach88/recalc/internal/revision"
)

// Status is the host-visible outcome of a request.
type Status string

const (
	// StatusDone means the transition committed.
	StatusDone Status = "done"

	// StatusDoneWithWarning means the transition committed but the POST
	// snapshot failed (failed-after-commit-with-warning).
	StatusDoneWithWarning Status = "done_with_warning"

	// StatusFailed means the transition aborted; see Result.Err.
	StatusFailed Status = "failed"
)

// Result is the host-visible report of one replace or revert request.
type Result struct {
	Status Status

	// Token correlates this request with its journal row.
	Token string

	// BackupIDs lists backups created by the request, in creation order.
	// Populated on failure too (a PRE backup survives an abort).
	BackupIDs []rev.ID

	// RestartRequired signals that the host must restart/reload the
	// live program to run the new artifact.
	RestartRequired bool

	// PostBackupFailed mirrors the controller warning flag.
	PostBackupFailed bool

	// Err is the typed failure, nil on success. Inspect with the rev
	// predicates (rev.IsValidation, rev.IsBusy, ...) or
	// revision.AsTransitionError.
	Err error
}

// Session wires the controller and stores behind the host API.
type Session struct {
	controller *revision.Controller
	backups    *backup.Store
	journal    *journal.Journal
}

// New creates a Session. jl may be nil to run without a journal.
func New(controller *revision.Controller, backups *backup.Store, jl *journal.Journal) *Session {
	return &Session{
		controller: controller,
		backups:    backups,
		journal:    jl,
	}
}

// Replace requests replacement of the live artifact with candidate.
func (s *Session) Replace(ctx context.Context, candidate []byte) Result {
	out, err := s.controller.Replace(ctx, candidate)
	return resultFrom(out, err)
}

// Revert requests restoration of the backup with the given id.
func (s *Session) Revert(ctx context.Context, id rev.ID) Result {
	out, err := s.controller.Revert(ctx, id)
	return resultFrom(out, err)
}

// History returns all backups in creation order.
func (s *Session) History(ctx context.Context) ([]rev.Backup, error) {
	return s.backups.List()
}

// Transitions returns the journal rows in completion order, or an empty
// slice when the session runs without a journal.
func (s *Session) Transitions(ctx context.Context) ([]journal.Transition, error) {
	if s.journal == nil {
		return []journal.Transition{}, nil
	}
	return s.journal.ListTransitions(ctx)
}

func resultFrom(out revision.Outcome, err error) Result {
	r := Result{
		Token:            out.Token,
		BackupIDs:        out.BackupIDs,
		PostBackupFailed: out.PostBackupFailed,
		Err:              err,
	}
	switch {
	case err != nil:
		r.Status = StatusFailed
	case out.PostBackupFailed:
		r.Status = StatusDoneWithWarning
		r.RestartRequired = true
	default:
		r.Status = StatusDone
		r.RestartRequired = true
	}
	return r
}
