// Package config loads the recalc configuration file.
//
// Configuration is a small YAML document; every field has a sensible
// default and flags override file values, so a config file is optional.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the state directory.
const DefaultFileName = "recalc.yaml"

// Config is the recalc configuration.
type Config struct {
	// StateDir holds the artifact, backups, journal, and key file.
	StateDir string `yaml:"state_dir"`

	// ArtifactName is the live artifact filename inside StateDir.
	ArtifactName string `yaml:"artifact_name"`

	// Model is the chat model used by customize.
	Model string `yaml:"model"`

	// KeyFile is the API key file, relative to StateDir unless absolute.
	KeyFile string `yaml:"key_file"`

	// PolicyFile is an optional CUE validation policy, relative to
	// StateDir unless absolute. Empty disables policy checks.
	PolicyFile string `yaml:"policy_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StateDir:     ".",
		ArtifactName: "calc.star",
		Model:        "gpt-4o",
		KeyFile:      "openai_api_key.txt",
	}
}

// Load reads a config file over the defaults. A missing file is not an
// error - the defaults apply; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.StateDir == "" {
		cfg.StateDir = "."
	}
	if cfg.ArtifactName == "" {
		cfg.ArtifactName = "calc.star"
	}
	return cfg, nil
}

// ArtifactPath returns the absolute-ish path of the live artifact.
func (c Config) ArtifactPath() string {
	return filepath.Join(c.StateDir, c.ArtifactName)
}

// BackupDir returns the backup directory path.
func (c Config) BackupDir() string {
	return filepath.Join(c.StateDir, "backups")
}

// JournalPath returns the transition journal path.
func (c Config) JournalPath() string {
	return filepath.Join(c.StateDir, "journal.db")
}

// KeyFilePath returns the API key file path.
func (c Config) KeyFilePath() string {
	return c.resolve(c.KeyFile)
}

// PolicyFilePath returns the policy file path, or "" when unset.
func (c Config) PolicyFilePath() string {
	if c.PolicyFile == "" {
		return ""
	}
	return c.resolve(c.PolicyFile)
}

// ArtifactBase returns the artifact name without extension, used as the
// base of backup filenames ("calc" for "calc.star").
func (c Config) ArtifactBase() string {
	name := c.ArtifactName
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	return name
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.StateDir, path)
}
