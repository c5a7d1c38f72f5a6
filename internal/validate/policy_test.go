package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPolicy_FullDocument(t *testing.T) {
	path := writePolicy(t, `
required_defs: ["format_result"]
max_bytes:     65536
forbidden_calls: ["load", "exec"]
`)

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"format_result"}, p.RequiredDefs)
	assert.Equal(t, int64(65536), p.MaxBytes)
	assert.Equal(t, []string{"load", "exec"}, p.ForbiddenCalls)
}

func TestLoadPolicy_AbsentFieldsDisableChecks(t *testing.T) {
	path := writePolicy(t, `max_bytes: 1024`)

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Empty(t, p.RequiredDefs)
	assert.Empty(t, p.ForbiddenCalls)
	assert.Equal(t, int64(1024), p.MaxBytes)
}

func TestLoadPolicy_MalformedCUE(t *testing.T) {
	path := writePolicy(t, `required_defs: [unclosed`)

	_, err := LoadPolicy(path)
	assert.Error(t, err)
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.cue"))
	assert.Error(t, err)
}
