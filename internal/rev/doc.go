// Package rev defines the shared vocabulary of the versioned
// self-replacement core: backup identity, transition phases, content
// checksums, and the error taxonomy every layer reports through.
//
// # Critical Patterns
//
// CP-1: Monotonic Backup Identity
//   - Backup ids combine a wall timestamp with a strictly increasing
//     sequence counter
//   - Ordering uses the sequence counter, NEVER timestamps alone, so
//     same-second snapshots stay totally ordered
//
// CP-2: Typed Errors, Never Silent
//   - Every persistence failure surfaces as a concrete error type
//     (IOError, NotFoundError, CorruptionError)
//   - A silent backup failure would make revert unsafe, so nothing in
//     this package or its consumers swallows storage errors
//
// Content checksums use SHA-256 with domain separation over
// NFC-normalized bytes, so logically identical text hashes identically
// regardless of Unicode encoding of the source.
package rev
