package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/recalc/internal/artifact"
	"github.com/roach88/recalc/internal/backup"
	"github.com/roach88/recalc/internal/calc"
	"github.com/roach88/recalc/internal/config"
	"github.com/roach88/recalc/internal/journal"
	"github.com/roach88/recalc/internal/revision"
	"github.com/roach88/recalc/internal/session"
	"github.com/roach88/recalc/internal/validate"
)

// core bundles everything a command needs: config, the live artifact,
// stores, and the session facade. Close releases the journal.
type core struct {
	cfg      config.Config
	artifact *artifact.Artifact
	backups  *backup.Store
	journal  *journal.Journal
	session  *session.Session
}

func (c *core) Close() error {
	if c.journal == nil {
		return nil
	}
	return c.journal.Close()
}

// loadConfig resolves the configuration from flags and the optional
// config file. --state-dir beats the file value; --config names an
// explicit file, otherwise the default name inside the state dir (or
// cwd) is probed.
func loadConfig(opts *RootOptions) (config.Config, error) {
	path := opts.Config
	if path == "" {
		dir := opts.StateDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, config.DefaultFileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if opts.StateDir != "" {
		cfg.StateDir = opts.StateDir
	}
	return cfg, nil
}

// openCore opens (creating on first run) the state directory: the live
// artifact is bootstrapped from the embedded calculator program, the
// backup directory and transition journal are opened, and the session
// is wired with the configured validation policy.
func openCore(opts *RootOptions) (*core, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", cfg.StateDir, err)
	}

	art := artifact.New(cfg.ArtifactPath())
	if _, err := art.Bootstrap(calc.Bootstrap()); err != nil {
		return nil, fmt.Errorf("bootstrap artifact: %w", err)
	}

	backups, err := backup.Open(cfg.BackupDir(), cfg.ArtifactBase())
	if err != nil {
		return nil, fmt.Errorf("open backup store: %w", err)
	}

	jl, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	var policy *validate.Policy
	if path := cfg.PolicyFilePath(); path != "" {
		policy, err = validate.LoadPolicy(path)
		if err != nil {
			jl.Close()
			return nil, fmt.Errorf("load policy: %w", err)
		}
	}

	controller := revision.New(art, backups, validate.New(policy), jl)

	return &core{
		cfg:      cfg,
		artifact: art,
		backups:  backups,
		journal:  jl,
		session:  session.New(controller, backups, jl),
	}, nil
}
