//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Isolate runs cmd in its own process group and makes context cancellation
// kill the whole group. Converters fork helpers (pandoc starts xelatex), and
// killing only the direct child would leave them running past the deadline.
// Must be called before cmd.Start.
func Isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the process may already have exited.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
