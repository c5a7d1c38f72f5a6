package journal

import (
	"context"
	"fmt"
	"time"
)

// RecordTransition appends a transition row.
// Uses ON CONFLICT(token) DO NOTHING for idempotency - re-recording the
// same transition is silently ignored.
func (j *Journal) RecordTransition(ctx context.Context, t Transition) error {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO transitions
		(token, kind, status, state_reached, target_backup, pre_backup, post_backup,
		 error_code, error_message, post_backup_failed, core_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		t.Token,
		string(t.Kind),
		string(t.Status),
		t.StateReached,
		t.TargetBackup,
		t.PreBackup,
		t.PostBackup,
		t.ErrorCode,
		t.ErrorMessage,
		boolToInt(t.PostBackupFailed),
		t.CoreVersion,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record transition: %w", err)
	}

	return nil
}

// RecordBackup appends a backup index row.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - a backup id is
// recorded at most once.
func (j *Journal) RecordBackup(ctx context.Context, b BackupRecord) error {
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO backups
		(id, phase, checksum, size, seq, transition_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		b.ID,
		b.Phase,
		b.Checksum,
		b.Size,
		b.Seq,
		b.TransitionToken,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record backup: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
