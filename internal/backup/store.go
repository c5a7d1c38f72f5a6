package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/roach88/recalc/internal/fsx"
	"github.com/roach88/recalc/internal/rev"
)

// Store manages the append-only backup directory.
//
// A Store owns its directory and the sequence clock; open exactly one
// Store per directory. Methods are safe for concurrent use, but the
// transition protocol serializes writers above this layer anyway.
type Store struct {
	dir   string
	base  string
	clock *Clock
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the wall-clock source for backup timestamps.
// Used by tests to produce deterministic filenames.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open creates or opens the backup directory and recovers the sequence
// high-water mark from existing backup filenames, so newly allocated ids
// continue the existing history (CP-1).
//
// base is the artifact base name embedded in backup filenames, e.g.
// "calc" for backups of calc.star.
func Open(dir, base string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &rev.IOError{Op: "open backup store", Path: dir, Err: err}
	}

	s := &Store{
		dir:  dir,
		base: base,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	high, err := s.highestSeq()
	if err != nil {
		return nil, err
	}
	s.clock = NewClockAt(high)

	return s, nil
}

// Dir returns the backup directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Snapshot durably persists content under a freshly allocated id and
// returns the backup descriptor.
//
// The write is temp-then-rename, so a crash mid-write never leaves a
// partial backup visible as complete. After the rename the content is
// read back and checksum-verified; a mismatch is a rev.CorruptionError.
// Ids are allocated here and the file becomes durable in the same call,
// so List order equals completion order.
func (s *Store) Snapshot(content []byte, phase rev.Phase) (rev.Backup, error) {
	if !phase.Valid() {
		return rev.Backup{}, fmt.Errorf("invalid backup phase %q", phase)
	}

	id := rev.ID{
		Stamp: s.now().Truncate(time.Second),
		Seq:   s.clock.Next(),
	}
	path := filepath.Join(s.dir, s.fileName(id, phase))

	if err := fsx.WriteFile(path, content, 0o644); err != nil {
		return rev.Backup{}, &rev.IOError{Op: "snapshot", Path: path, Err: err}
	}

	// Read-back verification (CP-2). The backup is the undo guarantee;
	// a backup that cannot be read back is worse than a failed one.
	got, err := os.ReadFile(path)
	if err != nil {
		return rev.Backup{}, &rev.IOError{Op: "verify snapshot", Path: path, Err: err}
	}
	want := rev.ContentChecksum(content)
	if sum := rev.ContentChecksum(got); sum != want {
		return rev.Backup{}, &rev.CorruptionError{Path: path, Want: want, Got: sum}
	}

	return rev.Backup{
		ID:        id,
		Phase:     phase,
		CreatedAt: id.Stamp,
		Size:      int64(len(content)),
		Checksum:  want,
	}, nil
}

// List returns descriptors for every backup, ordered by id ascending
// (creation order). Re-listing returns the same result absent new
// snapshots. Descriptors from List carry no checksum; checksums are
// computed at snapshot time and recorded in the transition journal.
func (s *Store) List() ([]rev.Backup, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &rev.IOError{Op: "list backups", Path: s.dir, Err: err}
	}

	pattern := s.namePattern()
	var backups []rev.Backup
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		b, ok := s.parseName(pattern, entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, &rev.IOError{Op: "stat backup", Path: entry.Name(), Err: err}
		}
		b.Size = info.Size()
		backups = append(backups, b)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ID.Less(backups[j].ID)
	})

	if backups == nil {
		backups = []rev.Backup{}
	}
	return backups, nil
}

// Read returns the full content of the backup with the given id.
// Returns rev.NotFoundError if no such backup exists.
func (s *Store) Read(id rev.ID) ([]byte, error) {
	b, err := s.find(id)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, s.fileName(b.ID, b.Phase))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &rev.IOError{Op: "read backup", Path: path, Err: err}
	}
	return content, nil
}

// Stat returns the descriptor of the backup with the given id.
// Returns rev.NotFoundError if no such backup exists.
func (s *Store) Stat(id rev.ID) (rev.Backup, error) {
	return s.find(id)
}

// Latest returns the most recent backup, optionally filtered by phase
// (pass the zero Phase for no filter). The second return value is false
// if no matching backup exists.
func (s *Store) Latest(phase rev.Phase) (rev.Backup, bool, error) {
	backups, err := s.List()
	if err != nil {
		return rev.Backup{}, false, err
	}
	for i := len(backups) - 1; i >= 0; i-- {
		if phase == "" || backups[i].Phase == phase {
			return backups[i], true, nil
		}
	}
	return rev.Backup{}, false, nil
}

func (s *Store) find(id rev.ID) (rev.Backup, error) {
	backups, err := s.List()
	if err != nil {
		return rev.Backup{}, err
	}
	for _, b := range backups {
		if b.ID == id {
			return b, nil
		}
	}
	return rev.Backup{}, &rev.NotFoundError{ID: id}
}

// fileName builds the on-disk name for a backup.
func (s *Store) fileName(id rev.ID, phase rev.Phase) string {
	return fmt.Sprintf("%s_%s.%s.bak", s.base, id, phase)
}

// namePattern matches backup filenames for this store's base name.
func (s *Store) namePattern() *regexp.Regexp {
	return regexp.MustCompile(
		`^` + regexp.QuoteMeta(s.base) +
			`_(\d{8}_\d{6}_v\d+)\.(pre_modify|post_modify|pre_revert|post_revert)\.bak$`)
}

// parseName decodes a backup filename into a descriptor.
// Returns false for files that are not backups of this artifact
// (temp files, foreign files dropped in the directory).
func (s *Store) parseName(pattern *regexp.Regexp, name string) (rev.Backup, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return rev.Backup{}, false
	}
	id, err := rev.ParseID(m[1])
	if err != nil {
		return rev.Backup{}, false
	}
	return rev.Backup{
		ID:        id,
		Phase:     rev.Phase(m[2]),
		CreatedAt: id.Stamp,
	}, true
}

// highestSeq scans the directory for the highest existing sequence
// number. Zero means an empty history.
func (s *Store) highestSeq() (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, &rev.IOError{Op: "scan backup store", Path: s.dir, Err: err}
	}

	pattern := s.namePattern()
	var high int64
	for _, entry := range entries {
		b, ok := s.parseName(pattern, entry.Name())
		if !ok {
			continue
		}
		if b.ID.Seq > high {
			high = b.ID.Seq
		}
	}
	return high, nil
}
