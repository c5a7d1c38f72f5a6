package rev

import "time"

// Phase tags a backup with the transition step that produced it.
type Phase string

const (
	// PhasePreModify is the safety snapshot taken before a replace commits.
	PhasePreModify Phase = "pre_modify"

	// PhasePostModify is the audit snapshot taken after a replace commits.
	PhasePostModify Phase = "post_modify"

	// PhasePreRevert is the safety snapshot taken before a revert commits,
	// so a revert is itself undoable.
	PhasePreRevert Phase = "pre_revert"

	// PhasePostRevert is the audit snapshot taken after a revert commits.
	PhasePostRevert Phase = "post_revert"
)

// Phases lists all valid phases in a stable order.
var Phases = []Phase{PhasePreModify, PhasePostModify, PhasePreRevert, PhasePostRevert}

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool {
	switch p {
	case PhasePreModify, PhasePostModify, PhasePreRevert, PhasePostRevert:
		return true
	}
	return false
}

// Backup describes one immutable snapshot of the artifact.
//
// The descriptor carries identity and audit metadata only; content is
// read separately by id. Backups are never mutated after creation and
// never garbage-collected by the core (retention is a host concern).
type Backup struct {
	// ID is the unique, monotonically increasing backup identity.
	ID ID

	// Phase records which transition step produced the snapshot.
	Phase Phase

	// CreatedAt is the wall time embedded in the id.
	CreatedAt time.Time

	// Size is the content length in bytes.
	Size int64

	// Checksum is the content checksum (see ContentChecksum).
	Checksum string
}
