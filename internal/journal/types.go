package journal

import "time"

// Kind identifies the transition variant.
type Kind string

const (
	KindReplace Kind = "replace"
	KindRevert  Kind = "revert"
)

// Status is the terminal outcome of a transition attempt.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Transition is one row of the transition journal: a single replace or
// revert attempt, pairing the PRE and POST backup ids that bracket it.
//
// Seq is assigned by the journal at insert (completion order). Backup id
// fields hold the canonical string form of rev.ID; empty means that
// stage was never reached.
type Transition struct {
	Seq          int64
	Token        string
	Kind         Kind
	Status       Status
	StateReached string
	TargetBackup string // revert target id, empty for replace
	PreBackup    string
	PostBackup   string
	ErrorCode    string
	ErrorMessage string

	// PostBackupFailed marks a committed transition whose POST snapshot
	// failed: the replacement succeeded but the audit record is missing.
	PostBackupFailed bool

	CoreVersion string
	CreatedAt   time.Time
}

// BackupRecord is one row of the backup index: the journal's mirror of
// a backup file's descriptor, including the checksum computed at
// snapshot time.
type BackupRecord struct {
	ID              string
	Phase           string
	Checksum        string
	Size            int64
	Seq             int64
	TransitionToken string
	CreatedAt       time.Time
}
