package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/recalc/internal/rev"
)

// historyData is the JSON payload for the history command.
type historyData struct {
	Backups     []backupData     `json:"backups"`
	Transitions []transitionData `json:"transitions,omitempty"`
}

type backupData struct {
	ID        string `json:"id"`
	Phase     string `json:"phase"`
	CreatedAt string `json:"created_at"`
	Size      int64  `json:"size"`
}

type transitionData struct {
	Seq          int64  `json:"seq"`
	Token        string `json:"token"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	StateReached string `json:"state_reached"`
	PreBackup    string `json:"pre_backup,omitempty"`
	PostBackup   string `json:"post_backup,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List backups of the calculator program",
		Long: `List every backup in creation order, oldest first. With --verbose the
transition journal is shown too: one row per replace or revert attempt,
including failed ones.

Example:
  recalc history
  recalc history --verbose --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	c, err := openCore(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open state dir", err)
	}
	defer c.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	backups, err := c.session.History(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list backups", err)
	}

	if f.Format == "json" {
		data := historyData{Backups: make([]backupData, 0, len(backups))}
		for _, b := range backups {
			data.Backups = append(data.Backups, backupData{
				ID:        b.ID.String(),
				Phase:     string(b.Phase),
				CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05"),
				Size:      b.Size,
			})
		}
		if opts.Verbose {
			transitions, err := c.session.Transitions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list transitions", err)
			}
			for _, t := range transitions {
				data.Transitions = append(data.Transitions, transitionData{
					Seq:          t.Seq,
					Token:        t.Token,
					Kind:         string(t.Kind),
					Status:       string(t.Status),
					StateReached: t.StateReached,
					PreBackup:    t.PreBackup,
					PostBackup:   t.PostBackup,
					ErrorCode:    t.ErrorCode,
				})
			}
		}
		return f.Success(data)
	}

	if len(backups) == 0 {
		fmt.Fprintln(f.Writer, "No backups.")
	} else {
		writeBackupTable(f, backups)
	}

	if opts.Verbose {
		transitions, err := c.session.Transitions(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list transitions", err)
		}
		if len(transitions) > 0 {
			fmt.Fprintln(f.Writer)
			fmt.Fprintln(f.Writer, "Transitions:")
			w := tabwriter.NewWriter(f.Writer, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEQ\tKIND\tSTATUS\tSTATE\tPRE\tPOST\tERROR")
			for _, t := range transitions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.Seq, t.Kind, t.Status, t.StateReached,
					orDash(t.PreBackup), orDash(t.PostBackup), orDash(t.ErrorCode))
			}
			w.Flush()
		}
	}
	return nil
}

func writeBackupTable(f *OutputFormatter, backups []rev.Backup) {
	w := tabwriter.NewWriter(f.Writer, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPHASE\tCREATED\tSIZE")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			b.ID, b.Phase, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Size)
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
