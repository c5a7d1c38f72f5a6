package rev

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// stampLayout is the timestamp encoding used inside backup ids.
// Second resolution; the sequence counter breaks same-second ties.
const stampLayout = "20060102_150405"

// ID is the identity of one backup: a wall timestamp plus a strictly
// increasing sequence counter (CP-1).
//
// The sequence counter defines the total order. Timestamps are carried
// for human consumption and survive in the on-disk name, but two ids
// with the same timestamp are still totally ordered by Seq.
type ID struct {
	// Stamp is the wall time at allocation, truncated to seconds.
	Stamp time.Time

	// Seq is the monotonic sequence counter. Never reused, even across
	// process restarts (the store recovers the high-water mark at open).
	Seq int64
}

// String renders the id in its canonical form, e.g. "20250306_153012_v3".
// This form sorts correctly by Seq when parsed, and is embedded verbatim
// in backup filenames.
func (id ID) String() string {
	return fmt.Sprintf("%s_v%d", id.Stamp.Format(stampLayout), id.Seq)
}

// Less reports whether id was allocated before other.
func (id ID) Less(other ID) bool {
	return id.Seq < other.Seq
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.Seq == 0 && id.Stamp.IsZero()
}

var idPattern = regexp.MustCompile(`^(\d{8}_\d{6})_v(\d+)$`)

// ParseID parses the canonical string form produced by String.
func ParseID(s string) (ID, error) {
	m := idPattern.FindStringSubmatch(s)
	if m == nil {
		return ID{}, fmt.Errorf("malformed backup id %q", s)
	}
	stamp, err := time.ParseInLocation(stampLayout, m[1], time.Local)
	if err != nil {
		return ID{}, fmt.Errorf("malformed backup id %q: %w", s, err)
	}
	seq, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("malformed backup id %q: %w", s, err)
	}
	return ID{Stamp: stamp, Seq: seq}, nil
}
