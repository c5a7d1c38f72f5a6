package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/recalc/internal/validate"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <candidate-file>",
		Short: "Validate a candidate program without replacing anything",
		Long: `Run a candidate file through the same validation a replace would:
non-empty, well-formed Starlark, and any configured policy. Nothing is
written; the exit code reports the verdict.

Example:
  recalc check ./calc-new.star`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	candidate, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read candidate %s", path), err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	var policy *validate.Policy
	if p := cfg.PolicyFilePath(); p != "" {
		policy, err = validate.LoadPolicy(p)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load policy", err)
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	res := validate.New(policy).Check(candidate)
	if f.Format == "json" {
		if err := f.Success(res); err != nil {
			return err
		}
	} else if res.OK {
		fmt.Fprintln(f.Writer, "OK")
	} else {
		fmt.Fprintf(f.Writer, "Rejected: %s\n", res.Reason)
	}

	if !res.OK {
		return NewExitError(ExitFailure, "candidate rejected: "+res.Reason)
	}
	return nil
}
