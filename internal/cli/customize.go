package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/recalc/internal/generate"
)

// CustomizeOptions holds flags for the customize command.
type CustomizeOptions struct {
	*RootOptions
	Model   string
	APIKey  string
	BaseURL string
	SaveKey bool
	Restart bool
}

// NewCustomizeCommand creates the customize command.
func NewCustomizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CustomizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "customize <request>",
		Short: "Ask the model to rewrite the calculator program",
		Long: `Ask a chat model to rewrite the live calculator program according to
a natural-language request, then run the rewritten program through the
standard replacement flow: backup, validate, commit, backup again.

The API key is resolved from --api-key, then the OPENAI_API_KEY
environment variable, then the key file in the state directory.

Example:
  recalc customize "add a factorial(n) helper"
  recalc customize --model gpt-4o-mini "format results with 2 decimals"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomize(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Model, "model", "", fmt.Sprintf("chat model (one of %v)", generate.Models))
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "API key (overrides env and key file)")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "API base URL override")
	cmd.Flags().BoolVar(&opts.SaveKey, "save-key", false, "persist the resolved API key to the key file")
	cmd.Flags().BoolVar(&opts.Restart, "restart", false, "re-exec the process after a successful replace")

	return cmd
}

func runCustomize(opts *CustomizeOptions, request string, cmd *cobra.Command) error {
	c, err := openCore(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open state dir", err)
	}
	defer c.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	key := generate.LoadKey(opts.APIKey, c.cfg.KeyFilePath())
	if key == "" {
		msg := "no API key: pass --api-key, set OPENAI_API_KEY, or create " + c.cfg.KeyFilePath()
		_ = f.Error("NO_API_KEY", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if opts.SaveKey {
		if err := generate.SaveKey(c.cfg.KeyFilePath(), key); err != nil {
			slog.Warn("failed to save api key", "error", err)
		}
	}

	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}

	gen, err := generate.New(generate.Config{APIKey: key, BaseURL: opts.BaseURL, Model: model})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build generator", err)
	}

	current, err := c.artifact.Read()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read program", err)
	}

	f.VerboseLog("requesting rewrite from %s", model)
	candidate, err := gen.Generate(cmd.Context(), request, current)
	if err != nil {
		_ = f.Error("GENERATION_FAILED", err.Error(), nil)
		return WrapExitError(ExitCommandError, "generation failed", err)
	}

	res := c.session.Replace(cmd.Context(), []byte(candidate))
	if err := reportResult(f, res); err != nil {
		return err
	}

	if opts.Restart && res.RestartRequired {
		return relaunch()
	}
	return nil
}
