package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `
state_dir: /var/lib/recalc
artifact_name: brain.star
model: gpt-4o-mini
policy_file: policy.cue
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/recalc", cfg.StateDir)
	assert.Equal(t, "brain.star", cfg.ArtifactName)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "policy.cue", cfg.PolicyFile)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("model: o1-mini\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "o1-mini", cfg.Model)
	assert.Equal(t, "calc.star", cfg.ArtifactName)
	assert.Equal(t, ".", cfg.StateDir)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("state_dir: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := Config{
		StateDir:     "/state",
		ArtifactName: "calc.star",
		KeyFile:      "openai_api_key.txt",
		PolicyFile:   "policy.cue",
	}

	assert.Equal(t, filepath.Join("/state", "calc.star"), cfg.ArtifactPath())
	assert.Equal(t, filepath.Join("/state", "backups"), cfg.BackupDir())
	assert.Equal(t, filepath.Join("/state", "journal.db"), cfg.JournalPath())
	assert.Equal(t, filepath.Join("/state", "openai_api_key.txt"), cfg.KeyFilePath())
	assert.Equal(t, filepath.Join("/state", "policy.cue"), cfg.PolicyFilePath())
}

func TestPaths_AbsoluteNotRebased(t *testing.T) {
	cfg := Config{StateDir: "/state", KeyFile: "/secrets/key.txt", PolicyFile: "/etc/recalc/policy.cue"}
	assert.Equal(t, "/secrets/key.txt", cfg.KeyFilePath())
	assert.Equal(t, "/etc/recalc/policy.cue", cfg.PolicyFilePath())
}

func TestPolicyFilePath_EmptyDisables(t *testing.T) {
	cfg := Config{StateDir: "/state"}
	assert.Equal(t, "", cfg.PolicyFilePath())
}

func TestArtifactBase(t *testing.T) {
	assert.Equal(t, "calc", Config{ArtifactName: "calc.star"}.ArtifactBase())
	assert.Equal(t, "brain", Config{ArtifactName: "brain.star"}.ArtifactBase())
	assert.Equal(t, "plain", Config{ArtifactName: "plain"}.ArtifactBase())
}
