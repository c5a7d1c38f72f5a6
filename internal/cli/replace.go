package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ReplaceOptions holds flags for the replace command.
type ReplaceOptions struct {
	*RootOptions
	Restart bool
}

// NewReplaceCommand creates the replace command.
func NewReplaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplaceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replace <candidate-file>",
		Short: "Replace the live program with a candidate file",
		Long: `Replace the live calculator program with the contents of a local file.

The candidate is validated (syntax plus any configured policy) before it
may become the live program. The transition is bracketed by backups: a
PRE_MODIFY snapshot of the current program is always taken first, and a
POST_MODIFY snapshot of the new program records the committed state.

Example:
  recalc replace ./calc-new.star
  recalc replace --state-dir ~/.recalc ./calc-new.star --restart`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Restart, "restart", false, "re-exec the process after a successful replace")

	return cmd
}

func runReplace(opts *ReplaceOptions, path string, cmd *cobra.Command) error {
	candidate, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read candidate %s", path), err)
	}

	c, err := openCore(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open state dir", err)
	}
	defer c.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	res := c.session.Replace(cmd.Context(), candidate)
	if err := reportResult(f, res); err != nil {
		return err
	}

	if opts.Restart && res.RestartRequired {
		return relaunch()
	}
	return nil
}
