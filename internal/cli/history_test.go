package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// seedBackups drops backup files with fixed ids directly into the state
// dir, bypassing the store, so output is byte-for-byte deterministic.
func seedBackups(t *testing.T, dir string) {
	t.Helper()
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(backupDir, 0o755))
	files := map[string]string{
		"calc_20260824_101500_v1.pre_modify.bak":  "a\n",
		"calc_20260824_101501_v2.post_modify.bak": "ab\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte(content), 0o644))
	}
}

func TestHistoryCommand_GoldenJSON(t *testing.T) {
	dir := t.TempDir()
	seedBackups(t, dir)

	out, err := runCLI(t, "--state-dir", dir, "--format", "json", "history")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "history_json", []byte(out))
}

func TestHistoryCommand_GoldenText(t *testing.T) {
	dir := t.TempDir()
	seedBackups(t, dir)

	out, err := runCLI(t, "--state-dir", dir, "history")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "history_text", []byte(out))
}
