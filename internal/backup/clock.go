package backup

import "sync/atomic"

// Clock allocates the monotonic sequence half of backup ids (CP-1).
//
// Sequence numbers are strictly increasing for the life of the store and
// never reused: the store recovers the high-water mark from existing
// backup filenames at open and resumes from there.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the single-writer transition protocol means only one goroutine
// normally calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next() returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used at store open to resume from the highest existing backup id.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
