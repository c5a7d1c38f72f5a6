//go:build windows

package cli

import (
	"fmt"
	"os"
	"os/exec"
)

// relaunch starts a fresh invocation of the same binary and arguments
// and exits the current process, so the new artifact is loaded from
// scratch. Windows has no exec(2), so parent and child overlap briefly.
func relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("relaunch %s: %w", exe, err)
	}
	os.Exit(0)
	return nil
}
