// Package artifact manages the single live artifact: the managed unit
// of source content subject to replacement.
//
// Exactly one artifact is live, at a well-known stable path distinct
// from any backup. The core never mutates executing code; it replaces
// the artifact on storage and the host restarts to pick it up.
package artifact

import (
	"errors"
	"os"

	"github.com/roach88/recalc/internal/fsx"
	"github.com/roach88/recalc/internal/rev"
)

// Artifact is the live artifact at a fixed path.
//
// All writes go through Replace, which has the same atomicity guarantee
// as backups: a reader sees either the old complete content or the new
// complete content, never a mix, even across a process crash.
type Artifact struct {
	path string
}

// New returns an Artifact handle for the given path. The file need not
// exist yet; see Bootstrap.
func New(path string) *Artifact {
	return &Artifact{path: path}
}

// Path returns the artifact's stable filesystem path.
func (a *Artifact) Path() string {
	return a.path
}

// Exists reports whether the live artifact is present on storage.
func (a *Artifact) Exists() (bool, error) {
	_, err := os.Stat(a.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, &rev.IOError{Op: "stat artifact", Path: a.path, Err: err}
}

// Read returns the full current content of the live artifact.
func (a *Artifact) Read() ([]byte, error) {
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &rev.IOError{Op: "read artifact", Path: a.path, Err: err}
	}
	return content, nil
}

// Replace atomically replaces the live artifact's content.
//
// Write-temp-then-rename semantics: the artifact is never left truncated
// or half-written. If the rename never happened the old content remains
// intact - that is the atomicity guarantee, not a rollback action.
// After the rename the content is read back and checksum-verified; a
// mismatch is a rev.CorruptionError.
func (a *Artifact) Replace(content []byte) error {
	if err := fsx.WriteFile(a.path, content, 0o644); err != nil {
		return &rev.IOError{Op: "commit artifact", Path: a.path, Err: err}
	}

	got, err := os.ReadFile(a.path)
	if err != nil {
		return &rev.IOError{Op: "verify artifact", Path: a.path, Err: err}
	}
	want := rev.ContentChecksum(content)
	if sum := rev.ContentChecksum(got); sum != want {
		return &rev.CorruptionError{Path: a.path, Want: want, Got: sum}
	}
	return nil
}

// Bootstrap writes initial content if and only if the artifact does not
// exist yet. Returns true if the artifact was created.
func (a *Artifact) Bootstrap(initial []byte) (bool, error) {
	exists, err := a.Exists()
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := a.Replace(initial); err != nil {
		return false, err
	}
	return true, nil
}
