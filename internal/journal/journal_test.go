package journal

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_AppliesPragmas(t *testing.T) {
	j := openTestJournal(t)

	if err := j.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := j.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
	if err := j.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 3; i++ {
		j, err := Open(path)
		if err != nil {
			t.Fatalf("Open() attempt %d failed: %v", i, err)
		}
		if err := j.verifyPragma("user_version", "1"); err != nil {
			t.Errorf("attempt %d: %v", i, err)
		}
		j.Close()
	}
}

func TestRecordTransition_RoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	in := Transition{
		Token:        "tok-1",
		Kind:         KindReplace,
		Status:       StatusDone,
		StateReached: "DONE",
		PreBackup:    "20260824_101500_v1",
		PostBackup:   "20260824_101501_v2",
		CoreVersion:  "0.1.0",
		CreatedAt:    time.Date(2026, 8, 24, 10, 15, 1, 0, time.UTC),
	}
	if err := j.RecordTransition(ctx, in); err != nil {
		t.Fatalf("RecordTransition() failed: %v", err)
	}

	got, err := j.ReadTransition(ctx, "tok-1")
	if err != nil {
		t.Fatalf("ReadTransition() failed: %v", err)
	}
	if got.Seq == 0 {
		t.Error("Seq not assigned")
	}
	if got.Kind != KindReplace || got.Status != StatusDone {
		t.Errorf("kind/status = %s/%s", got.Kind, got.Status)
	}
	if got.PreBackup != in.PreBackup || got.PostBackup != in.PostBackup {
		t.Errorf("backups = %s/%s", got.PreBackup, got.PostBackup)
	}
	if !got.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, in.CreatedAt)
	}
	if got.PostBackupFailed {
		t.Error("PostBackupFailed = true, want false")
	}
}

func TestRecordTransition_FailedAttempt(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	in := Transition{
		Token:        "tok-fail",
		Kind:         KindReplace,
		Status:       StatusFailed,
		StateReached: "VALIDATING",
		PreBackup:    "20260824_101500_v1",
		ErrorCode:    "VALIDATION_FAILED",
		ErrorMessage: "candidate rejected: parse error",
		CoreVersion:  "0.1.0",
	}
	if err := j.RecordTransition(ctx, in); err != nil {
		t.Fatalf("RecordTransition() failed: %v", err)
	}

	got, err := j.ReadTransition(ctx, "tok-fail")
	if err != nil {
		t.Fatalf("ReadTransition() failed: %v", err)
	}
	if got.ErrorCode != "VALIDATION_FAILED" {
		t.Errorf("ErrorCode = %q", got.ErrorCode)
	}
	if got.PostBackup != "" {
		t.Errorf("PostBackup = %q, want empty", got.PostBackup)
	}
}

func TestRecordTransition_TokenIdempotent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	first := Transition{Token: "tok-dup", Kind: KindReplace, Status: StatusDone, StateReached: "DONE"}
	if err := j.RecordTransition(ctx, first); err != nil {
		t.Fatalf("first RecordTransition() failed: %v", err)
	}

	// Re-recording the same token is silently ignored; the first row wins.
	second := first
	second.Status = StatusFailed
	if err := j.RecordTransition(ctx, second); err != nil {
		t.Fatalf("second RecordTransition() failed: %v", err)
	}

	got, err := j.ReadTransition(ctx, "tok-dup")
	if err != nil {
		t.Fatalf("ReadTransition() failed: %v", err)
	}
	if got.Status != StatusDone {
		t.Errorf("Status = %q, want %q (duplicate overwrote)", got.Status, StatusDone)
	}

	all, err := j.ListTransitions(ctx)
	if err != nil {
		t.Fatalf("ListTransitions() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ListTransitions() returned %d rows, want 1", len(all))
	}
}

func TestListTransitions_CompletionOrder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	tokens := []string{"tok-a", "tok-b", "tok-c"}
	for _, tok := range tokens {
		err := j.RecordTransition(ctx, Transition{Token: tok, Kind: KindRevert, Status: StatusDone, StateReached: "DONE"})
		if err != nil {
			t.Fatalf("RecordTransition(%s) failed: %v", tok, err)
		}
	}

	all, err := j.ListTransitions(ctx)
	if err != nil {
		t.Fatalf("ListTransitions() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d rows, want 3", len(all))
	}
	for i, tr := range all {
		if tr.Token != tokens[i] {
			t.Errorf("row %d token = %q, want %q", i, tr.Token, tokens[i])
		}
		if i > 0 && all[i].Seq <= all[i-1].Seq {
			t.Errorf("seq not increasing at row %d", i)
		}
	}
}

func TestListTransitions_Empty(t *testing.T) {
	j := openTestJournal(t)

	all, err := j.ListTransitions(context.Background())
	if err != nil {
		t.Fatalf("ListTransitions() failed: %v", err)
	}
	if all == nil {
		t.Error("ListTransitions() returned nil, want empty slice")
	}
}

func TestReadTransition_NotFound(t *testing.T) {
	j := openTestJournal(t)

	_, err := j.ReadTransition(context.Background(), "absent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}

func TestRecordBackup_RoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	in := BackupRecord{
		ID:              "20260824_101500_v1",
		Phase:           "pre_modify",
		Checksum:        "abc123",
		Size:            42,
		Seq:             1,
		TransitionToken: "tok-1",
		CreatedAt:       time.Date(2026, 8, 24, 10, 15, 0, 0, time.UTC),
	}
	if err := j.RecordBackup(ctx, in); err != nil {
		t.Fatalf("RecordBackup() failed: %v", err)
	}

	got, err := j.ReadBackup(ctx, in.ID)
	if err != nil {
		t.Fatalf("ReadBackup() failed: %v", err)
	}
	if got.Phase != in.Phase || got.Checksum != in.Checksum || got.Size != in.Size || got.Seq != in.Seq {
		t.Errorf("record = %+v, want %+v", got, in)
	}
}

func TestRecordBackup_IDIdempotent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	b := BackupRecord{ID: "20260824_101500_v1", Phase: "pre_modify", Seq: 1}
	if err := j.RecordBackup(ctx, b); err != nil {
		t.Fatalf("RecordBackup() failed: %v", err)
	}
	if err := j.RecordBackup(ctx, b); err != nil {
		t.Fatalf("duplicate RecordBackup() failed: %v", err)
	}

	all, err := j.ListBackups(ctx)
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ListBackups() returned %d rows, want 1", len(all))
	}
}

func TestListBackups_SeqOrder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	// Insert out of order; reads come back by backup seq.
	for _, b := range []BackupRecord{
		{ID: "20260824_101502_v3", Phase: "pre_revert", Seq: 3},
		{ID: "20260824_101500_v1", Phase: "pre_modify", Seq: 1},
		{ID: "20260824_101501_v2", Phase: "post_modify", Seq: 2},
	} {
		if err := j.RecordBackup(ctx, b); err != nil {
			t.Fatalf("RecordBackup(%s) failed: %v", b.ID, err)
		}
	}

	all, err := j.ListBackups(ctx)
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	for i, b := range all {
		if b.Seq != int64(i+1) {
			t.Errorf("row %d seq = %d, want %d", i, b.Seq, i+1)
		}
	}
}
