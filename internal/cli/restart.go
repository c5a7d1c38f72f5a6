//go:build unix

package cli

import (
	"fmt"
	"os"
	"syscall"
)

// relaunch replaces the current process with a fresh invocation of the
// same binary and arguments, so the new artifact is loaded from scratch.
// On success it never returns.
func relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("re-exec %s: %w", exe, err)
	}
	return nil
}
