// Command recalc is a calculator whose behavior lives in a managed
// Starlark artifact that the tool itself can rewrite, with every
// replacement bracketed by durable backups.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/recalc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
