// Package journal provides the SQLite-backed transition journal: the
// durable record of every replace/revert attempt and the backup index.
//
// The journal is an append-only audit log with:
//   - Transitions: one row per transition attempt that reached the
//     backup stage, pairing the PRE and POST backup ids that bracket it
//   - Backups: descriptor index (id, phase, checksum, size) mirroring
//     the backup directory
//
// # Critical Patterns
//
// CP-3: Journal Is Audit, Not Authority
//   - The backup directory is the source of truth for revert; the
//     journal reconstructs history and carries checksums for integrity
//     checks
//   - A journal write failure after a committed transition is reported
//     as a warning, never unwinds the commit
//
// CP-4: Deterministic Query Results
//   - All listing queries order by seq ASC so history reads are stable
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package journal
