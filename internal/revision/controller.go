package revision

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/roach88/recalc/internal/artifact"
	"github.com/roach88/recalc/internal/backup"
	"github.com/roach88/recalc/internal/journal"
	"github.com/roach88/recalc/internal/rev"
	"github.com/roach88/recalc/internal/validate"
)

// Controller runs the transition protocol over the live artifact, the
// backup store, and the validator. The journal is optional; when
// present, every attempt that allocates a token is recorded (CP-3: the
// journal is audit, not authority - journal failures are warnings).
//
// Thread-safety model:
//   - Replace/Revert: safe to call from any goroutine; at most one
//     proceeds, the rest fail with rev.BusyError
//   - The state field is the mutex: CAS from IDLE claims the machine
type Controller struct {
	artifact *artifact.Artifact
	backups  *backup.Store
	checker  *validate.Checker
	journal  *journal.Journal
	tokens   TokenGenerator

	state atomic.Int32

	// hookAfterPre runs after the PRE snapshot, before validation.
	// Test seam for busy-rejection and interruption tests.
	hookAfterPre func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithTokenGenerator overrides the transition token generator.
// Tests use FixedGenerator for deterministic journal rows.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(c *Controller) {
		c.tokens = g
	}
}

// New creates a Controller. jl may be nil to run without a journal.
func New(a *artifact.Artifact, b *backup.Store, checker *validate.Checker, jl *journal.Journal, opts ...Option) *Controller {
	c := &Controller{
		artifact: a,
		backups:  b,
		checker:  checker,
		journal:  jl,
		tokens:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the controller's current state machine position.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Outcome reports what a transition produced.
type Outcome struct {
	// Token is the journal correlation token of this attempt.
	Token string

	// BackupIDs lists the backups created, in creation order. Present
	// on failure too: a PRE backup taken before the failure remains.
	BackupIDs []rev.ID

	// PostBackupFailed is true when the transition committed but the
	// POST snapshot failed. The replacement succeeded; the post-snapshot
	// is an audit record, not a correctness gate.
	PostBackupFailed bool
}

// Replace runs the replace transition protocol:
//
//  1. Snapshot current live content (PRE_MODIFY). Failure here aborts -
//     the operation never proceeds without a safety snapshot.
//  2. Validate the candidate. Failure aborts; live artifact untouched.
//  3. Atomically replace the live artifact with the candidate.
//  4. Snapshot the new content (POST_MODIFY). Failure here is reported
//     via Outcome.PostBackupFailed but does not undo the commit.
//
// On failure the returned error is a *TransitionError carrying the
// state reached and the backups already created.
func (c *Controller) Replace(ctx context.Context, candidate []byte) (Outcome, error) {
	if err := c.begin(); err != nil {
		return Outcome{}, err
	}
	defer c.state.Store(int32(StateIdle))

	out := Outcome{Token: c.tokens.Generate()}

	current, err := c.artifact.Read()
	if err != nil {
		return out, c.fail(ctx, journal.KindReplace, &out, "", StateBackingUpPre, err)
	}

	pre, err := c.backups.Snapshot(current, rev.PhasePreModify)
	if err != nil {
		return out, c.fail(ctx, journal.KindReplace, &out, "", StateBackingUpPre, err)
	}
	out.BackupIDs = append(out.BackupIDs, pre.ID)
	c.recordBackup(ctx, pre, out.Token)

	if c.hookAfterPre != nil {
		c.hookAfterPre()
	}

	c.state.Store(int32(StateValidating))
	if res := c.checker.Check(candidate); !res.OK {
		return out, c.fail(ctx, journal.KindReplace, &out, "", StateValidating, &rev.ValidationError{Reason: res.Reason})
	}

	c.state.Store(int32(StateCommitting))
	if err := c.artifact.Replace(candidate); err != nil {
		// The PRE backup exists, so the caller can still recover
		// manually. Atomicity means the old content survives a failed
		// rename; there is no rollback action to take.
		return out, c.fail(ctx, journal.KindReplace, &out, "", StateCommitting, err)
	}

	c.state.Store(int32(StateBackingUpPost))
	if post, err := c.backups.Snapshot(candidate, rev.PhasePostModify); err != nil {
		out.PostBackupFailed = true
		slog.Warn("post-modify backup failed; replacement is committed",
			"token", out.Token, "error", err)
	} else {
		out.BackupIDs = append(out.BackupIDs, post.ID)
		c.recordBackup(ctx, post, out.Token)
	}

	c.state.Store(int32(StateDone))
	c.recordTransition(ctx, journal.KindReplace, &out, "", journal.StatusDone, StateDone, "", "")
	slog.Info("artifact replaced", "token", out.Token, "backups", len(out.BackupIDs))
	return out, nil
}

// Revert runs the revert transition protocol: snapshot current content
// (PRE_REVERT) so the revert is itself undoable, restore the target
// backup's content atomically, then snapshot the restored content
// (POST_REVERT). Reverting to an unknown id fails with rev.NotFoundError
// and changes nothing.
func (c *Controller) Revert(ctx context.Context, id rev.ID) (Outcome, error) {
	if err := c.begin(); err != nil {
		return Outcome{}, err
	}
	defer c.state.Store(int32(StateIdle))

	out := Outcome{Token: c.tokens.Generate()}
	target := id.String()

	current, err := c.artifact.Read()
	if err != nil {
		return out, c.fail(ctx, journal.KindRevert, &out, target, StateBackingUpPre, err)
	}

	pre, err := c.backups.Snapshot(current, rev.PhasePreRevert)
	if err != nil {
		return out, c.fail(ctx, journal.KindRevert, &out, target, StateBackingUpPre, err)
	}
	out.BackupIDs = append(out.BackupIDs, pre.ID)
	c.recordBackup(ctx, pre, out.Token)

	if c.hookAfterPre != nil {
		c.hookAfterPre()
	}

	c.state.Store(int32(StateReverting))
	content, err := c.backups.Read(id)
	if err != nil {
		return out, c.fail(ctx, journal.KindRevert, &out, target, StateReverting, err)
	}

	if err := c.artifact.Replace(content); err != nil {
		return out, c.fail(ctx, journal.KindRevert, &out, target, StateReverting, err)
	}

	c.state.Store(int32(StateBackingUpPost))
	if post, err := c.backups.Snapshot(content, rev.PhasePostRevert); err != nil {
		out.PostBackupFailed = true
		slog.Warn("post-revert backup failed; revert is committed",
			"token", out.Token, "error", err)
	} else {
		out.BackupIDs = append(out.BackupIDs, post.ID)
		c.recordBackup(ctx, post, out.Token)
	}

	c.state.Store(int32(StateDone))
	c.recordTransition(ctx, journal.KindRevert, &out, target, journal.StatusDone, StateDone, "", "")
	slog.Info("artifact reverted", "token", out.Token, "target", target)
	return out, nil
}

// begin claims the state machine, rejecting concurrent requests
// immediately rather than queuing.
func (c *Controller) begin() error {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateBackingUpPre)) {
		return &rev.BusyError{State: c.State().String()}
	}
	return nil
}

// fail journals a failed attempt and wraps the cause in a
// TransitionError carrying the state reached and backups created.
func (c *Controller) fail(ctx context.Context, kind journal.Kind, out *Outcome, target string, state State, cause error) error {
	te := &TransitionError{
		Code:      CodeFor(cause),
		State:     state,
		Token:     out.Token,
		BackupIDs: out.BackupIDs,
		Err:       cause,
	}
	c.recordTransition(ctx, kind, out, target, journal.StatusFailed, state, string(te.Code), cause.Error())
	slog.Warn("transition failed", "token", out.Token, "state", state.String(), "code", string(te.Code), "error", cause)
	return te
}

// recordBackup mirrors a backup descriptor into the journal (CP-3).
func (c *Controller) recordBackup(ctx context.Context, b rev.Backup, token string) {
	if c.journal == nil {
		return
	}
	err := c.journal.RecordBackup(ctx, journal.BackupRecord{
		ID:              b.ID.String(),
		Phase:           string(b.Phase),
		Checksum:        b.Checksum,
		Size:            b.Size,
		Seq:             b.ID.Seq,
		TransitionToken: token,
		CreatedAt:       b.CreatedAt,
	})
	if err != nil {
		slog.Warn("journal backup record failed", "backup", b.ID.String(), "error", err)
	}
}

// recordTransition appends the attempt's terminal row to the journal (CP-3).
func (c *Controller) recordTransition(ctx context.Context, kind journal.Kind, out *Outcome, target string, status journal.Status, state State, errCode, errMsg string) {
	if c.journal == nil {
		return
	}

	t := journal.Transition{
		Token:            out.Token,
		Kind:             kind,
		Status:           status,
		StateReached:     state.String(),
		TargetBackup:     target,
		PostBackupFailed: out.PostBackupFailed,
		CoreVersion:      rev.CoreVersion,
	}
	if len(out.BackupIDs) > 0 {
		t.PreBackup = out.BackupIDs[0].String()
	}
	if len(out.BackupIDs) > 1 {
		t.PostBackup = out.BackupIDs[1].String()
	}
	if status == journal.StatusFailed {
		t.ErrorCode = errCode
		t.ErrorMessage = errMsg
	}

	if err := c.journal.RecordTransition(ctx, t); err != nil {
		slog.Warn("journal transition record failed", "token", out.Token, "error", err)
	}
}
