package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "4"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("VALIDATION_FAILED", "candidate rejected: parse error", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Equal(t, "candidate rejected: parse error", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]any{"backup_ids": []string{"20260824_101500_v1"}}
	err := formatter.Error("STORAGE_IO", "snapshot failed", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("42")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "42")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Error("BUSY", "transition already in progress", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [BUSY]: transition already in progress")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	formatter.VerboseLog("loaded %d backups", 3)
	assert.Empty(t, out.String(), "verbose logs must not corrupt JSON output")
	assert.Contains(t, errOut.String(), "loaded 3 backups")

	formatter.Verbose = false
	errOut.Reset()
	formatter.VerboseLog("hidden")
	assert.Empty(t, errOut.String())
}

func TestExitError_Codes(t *testing.T) {
	plain := NewExitError(ExitFailure, "operation failed")
	assert.Equal(t, ExitFailure, GetExitCode(plain))
	assert.Equal(t, "operation failed", plain.Error())

	wrapped := WrapExitError(ExitCommandError, "failed to open state dir", fmt.Errorf("permission denied"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Contains(t, wrapped.Error(), "permission denied")

	// Exit code survives wrapping in another error.
	outer := fmt.Errorf("outer: %w", wrapped)
	assert.Equal(t, ExitCommandError, GetExitCode(outer))

	// Non-ExitErrors default to failure.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("anything")))
}
