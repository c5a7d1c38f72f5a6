package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListTransitions returns all transition rows in completion order.
// Results ordered by seq ASC per CP-4.
//
// Returns an empty slice (not nil) if the journal is empty.
func (j *Journal) ListTransitions(ctx context.Context) ([]Transition, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, token, kind, status, state_reached, target_backup, pre_backup,
		       post_backup, error_code, error_message, post_backup_failed,
		       core_version, created_at
		FROM transitions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var transitions []Transition
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transitions: %w", err)
	}

	if transitions == nil {
		transitions = []Transition{}
	}
	return transitions, nil
}

// ReadTransition retrieves a single transition by token.
// Returns sql.ErrNoRows if not found.
func (j *Journal) ReadTransition(ctx context.Context, token string) (Transition, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT seq, token, kind, status, state_reached, target_backup, pre_backup,
		       post_backup, error_code, error_message, post_backup_failed,
		       core_version, created_at
		FROM transitions
		WHERE token = ?
	`, token)

	return scanTransitionRow(row)
}

// ListBackups returns all backup index rows ordered by backup sequence.
// Results ordered by seq ASC per CP-4.
//
// Returns an empty slice (not nil) if no backups are recorded.
func (j *Journal) ListBackups(ctx context.Context) ([]BackupRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, phase, checksum, size, seq, transition_token, created_at
		FROM backups
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query backups: %w", err)
	}
	defer rows.Close()

	var backups []BackupRecord
	for rows.Next() {
		var b BackupRecord
		var createdAt string
		if err := rows.Scan(&b.ID, &b.Phase, &b.Checksum, &b.Size, &b.Seq, &b.TransitionToken, &createdAt); err != nil {
			return nil, fmt.Errorf("scan backup record: %w", err)
		}
		b.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		backups = append(backups, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backups: %w", err)
	}

	if backups == nil {
		backups = []BackupRecord{}
	}
	return backups, nil
}

// ReadBackup retrieves a single backup index row by id.
// Returns sql.ErrNoRows if not found.
func (j *Journal) ReadBackup(ctx context.Context, id string) (BackupRecord, error) {
	var b BackupRecord
	var createdAt string
	err := j.db.QueryRowContext(ctx, `
		SELECT id, phase, checksum, size, seq, transition_token, created_at
		FROM backups
		WHERE id = ?
	`, id).Scan(&b.ID, &b.Phase, &b.Checksum, &b.Size, &b.Seq, &b.TransitionToken, &createdAt)
	if err != nil {
		return BackupRecord{}, err
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return BackupRecord{}, err
	}
	return b, nil
}

// scanTransition scans a rows cursor into a Transition.
func scanTransition(rows *sql.Rows) (Transition, error) {
	var t Transition
	var kind, status, createdAt string
	var postFailed int

	if err := rows.Scan(
		&t.Seq, &t.Token, &kind, &status, &t.StateReached, &t.TargetBackup,
		&t.PreBackup, &t.PostBackup, &t.ErrorCode, &t.ErrorMessage,
		&postFailed, &t.CoreVersion, &createdAt,
	); err != nil {
		return Transition{}, fmt.Errorf("scan transition: %w", err)
	}

	return finishTransition(t, kind, status, postFailed, createdAt)
}

// scanTransitionRow scans a single row into a Transition.
func scanTransitionRow(row *sql.Row) (Transition, error) {
	var t Transition
	var kind, status, createdAt string
	var postFailed int

	if err := row.Scan(
		&t.Seq, &t.Token, &kind, &status, &t.StateReached, &t.TargetBackup,
		&t.PreBackup, &t.PostBackup, &t.ErrorCode, &t.ErrorMessage,
		&postFailed, &t.CoreVersion, &createdAt,
	); err != nil {
		return Transition{}, err
	}

	return finishTransition(t, kind, status, postFailed, createdAt)
}

func finishTransition(t Transition, kind, status string, postFailed int, createdAt string) (Transition, error) {
	t.Kind = Kind(kind)
	t.Status = Status(status)
	t.PostBackupFailed = postFailed != 0

	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return Transition{}, err
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse journal timestamp %q: %w", s, err)
	}
	return ts, nil
}
