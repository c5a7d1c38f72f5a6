// Package testutil provides deterministic test doubles shared across
// packages.
package testutil

import (
	"sync"
	"time"
)

// StepTime provides a thread-safe deterministic time source for tests.
//
// Each call to Now advances the clock by the configured step, so code
// that embeds wall time in identifiers (backup filenames) produces
// stable, distinct values run after run.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type StepTime struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStepTime creates a StepTime starting at start; each Now call
// returns the current value and advances by step.
func NewStepTime(start time.Time, step time.Duration) *StepTime {
	return &StepTime{now: start, step: step}
}

// Now returns the current time and advances the clock by step.
func (s *StepTime) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now
	s.now = s.now.Add(s.step)
	return t
}

// Peek returns the current time without advancing.
func (s *StepTime) Peek() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
