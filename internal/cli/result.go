package cli

import (
	"fmt"

	"github.com/roach88/recalc/internal/rev"
	"github.com/roach88/recalc/internal/revision"
	"github.com/roach88/recalc/internal/session"
)

// resultData is the JSON payload for replace/revert results.
type resultData struct {
	Status           string   `json:"status"`
	Token            string   `json:"token"`
	BackupIDs        []string `json:"backup_ids"`
	RestartRequired  bool     `json:"restart_required"`
	PostBackupFailed bool     `json:"post_backup_failed,omitempty"`
}

// reportResult renders a session result and converts failures into
// ExitErrors so the process exit code reflects the outcome.
func reportResult(f *OutputFormatter, res session.Result) error {
	ids := make([]string, len(res.BackupIDs))
	for i, id := range res.BackupIDs {
		ids[i] = id.String()
	}

	if res.Err != nil {
		code := string(revision.CodeFor(res.Err))
		if te, ok := revision.AsTransitionError(res.Err); ok {
			code = string(te.Code)
		}
		_ = f.Error(code, res.Err.Error(), map[string]any{"backup_ids": ids})
		return WrapExitError(exitCodeFor(res.Err), "operation failed", res.Err)
	}

	if f.Format == "json" {
		return f.Success(resultData{
			Status:           string(res.Status),
			Token:            res.Token,
			BackupIDs:        ids,
			RestartRequired:  res.RestartRequired,
			PostBackupFailed: res.PostBackupFailed,
		})
	}

	fmt.Fprintf(f.Writer, "Status: %s\n", res.Status)
	if len(ids) > 0 {
		fmt.Fprintln(f.Writer, "Backups created:")
		for _, id := range ids {
			fmt.Fprintf(f.Writer, "  %s\n", id)
		}
	}
	if res.PostBackupFailed {
		fmt.Fprintln(f.Writer, "Warning: post-commit backup failed; the replacement itself succeeded.")
	}
	if res.RestartRequired {
		fmt.Fprintln(f.Writer, "Restart required: the new program loads on the next run.")
	}
	return nil
}

// exitCodeFor maps failure categories onto process exit codes:
// rejected candidates and busy controllers are operation failures (1),
// everything touching storage or unknown ids is a command error (2).
func exitCodeFor(err error) int {
	switch {
	case rev.IsValidation(err), rev.IsBusy(err):
		return ExitFailure
	default:
		return ExitCommandError
	}
}
