package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/recalc/internal/rev"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Backup string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the live program (or a backup) source",
		Long: `Print the source of the live calculator program, or of a backup when
--backup names one.

Example:
  recalc show
  recalc show --backup 20260824_101500_v3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Backup, "backup", "", "print this backup instead of the live program")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	c, err := openCore(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open state dir", err)
	}
	defer c.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	var src []byte
	if opts.Backup != "" {
		id, err := rev.ParseID(opts.Backup)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid backup id %q", opts.Backup), err)
		}
		src, err = c.backups.Read(id)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read backup", err)
		}
	} else {
		src, err = c.artifact.Read()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read program", err)
		}
	}

	if f.Format == "json" {
		return f.Success(map[string]string{"source": string(src)})
	}
	fmt.Fprint(f.Writer, string(src))
	return nil
}
