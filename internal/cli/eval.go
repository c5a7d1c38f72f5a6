package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/recalc/internal/calc"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression with the live program",
		Long: `Evaluate a single expression in the environment defined by the live
calculator program. Helper functions the program defines are available,
and its format_result hook (if any) renders the result.

Example:
  recalc eval '2 + 2'
  recalc eval 'avg([1, 2, 3])'`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func runEval(opts *RootOptions, expr string, cmd *cobra.Command) error {
	c, err := openCore(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open state dir", err)
	}
	defer c.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	src, err := c.artifact.Read()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read program", err)
	}

	program, err := calc.Load(c.cfg.ArtifactName, src)
	if err != nil {
		_ = f.Error("LOAD_FAILED", err.Error(), nil)
		return WrapExitError(ExitCommandError, "program failed to load", err)
	}

	result, err := program.Eval(expr)
	if err != nil {
		_ = f.Error("EVAL_FAILED", err.Error(), nil)
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}

	if f.Format == "json" {
		return f.Success(map[string]string{"expression": expr, "result": result})
	}
	return f.Success(result)
}
