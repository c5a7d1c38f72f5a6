// Package backup implements the durable, append-only history of
// artifact snapshots.
//
// Each backup is a distinct file in the store directory, named
//
//	{base}_{YYYYMMDD_HHMMSS}_v{seq}.{phase}.bak
//
// so the name alone encodes creation order (the v{seq} counter),
// disambiguates same-second snapshots, and records the transition phase
// that produced it. Content is stored verbatim, never compressed or
// diffed.
//
// # Critical Patterns
//
// CP-1: Monotonic Backup Identity
//   - Sequence numbers come from an atomic clock recovered from the
//     directory at open, so ids are never reused across restarts
//   - Ids are allocated per snapshot and the file becomes visible only
//     on rename, so List order equals durable completion order
//
// CP-2: Typed Errors, Never Silent
//   - Writes are temp-write-then-rename; a crash never leaves a partial
//     backup visible as complete
//   - Every snapshot is read back and checksum-verified before the
//     descriptor is returned
//
// Backups accumulate without bound; retention is a host policy, not a
// correctness concern of this package.
package backup
