package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/recalc/internal/rev"
)

// RevertOptions holds flags for the revert command.
type RevertOptions struct {
	*RootOptions
	Restart bool
}

// NewRevertCommand creates the revert command.
func NewRevertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RevertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "revert <backup-id>",
		Short: "Restore the program from a backup",
		Long: `Restore the live calculator program from a named backup.

The backup id comes from 'recalc history'. Reverting is itself a
bracketed transition: a PRE_REVERT snapshot of the current program is
taken before the restore, so a revert can always be undone.

Example:
  recalc revert 20260824_101500_v3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRevert(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Restart, "restart", false, "re-exec the process after a successful revert")

	return cmd
}

func runRevert(opts *RevertOptions, arg string, cmd *cobra.Command) error {
	id, err := rev.ParseID(arg)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid backup id %q", arg), err)
	}

	c, err := openCore(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open state dir", err)
	}
	defer c.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	res := c.session.Revert(cmd.Context(), id)
	if err := reportResult(f, res); err != nil {
		return err
	}

	if opts.Restart && res.RestartRequired {
		return relaunch()
	}
	return nil
}
