package md2doc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-md2doc/internal/process"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren after the tool itself was killed.
const waitDelay = 2 * time.Second

// maxDiagnosticLen caps the stderr excerpt carried in error messages.
const maxDiagnosticLen = 2000

// CommandRunner abstracts command execution to enable testing without real subprocesses.
// Implementations must honour ctx: the deadline is the tier's time bound.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The command runs in its own process group, killed as a whole when ctx ends.
type ExecRunner struct{}

// Run executes name with args and classifies failures:
// a missing executable wraps ErrToolNotFound, an expired deadline wraps
// ErrToolTimeout and a non-zero exit wraps ErrToolFailed with the tool's stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	process.Isolate(cmd)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), nil
	}
	return stdout.String(), stderr.String(), classifyRunError(ctx, name, stderr.String(), err)
}

// classifyRunError maps an exec failure onto the tool sentinel errors.
func classifyRunError(ctx context.Context, name, stderr string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrToolTimeout, name, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, exec.ErrDot) || isNotExist(err) {
		return fmt.Errorf("%w: %s: %v", ErrToolNotFound, name, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with status %d: %s", ErrToolFailed, name, exitErr.ExitCode(), diagnostic(stderr))
	}
	return fmt.Errorf("%w: %s: %v", ErrToolFailed, name, err)
}

// isNotExist catches an explicit executable path that does not exist,
// which exec reports as a *fs.PathError rather than ErrNotFound.
func isNotExist(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

// diagnostic trims tool stderr for inclusion in an error message.
func diagnostic(stderr string) string {
	s := strings.TrimSpace(stderr)
	if s == "" {
		return "(no diagnostic output)"
	}
	if len(s) > maxDiagnosticLen {
		s = s[:maxDiagnosticLen] + "..."
	}
	return s
}

// runTool runs one external tool invocation bounded by timeout.
func (c *Converter) runTool(ctx context.Context, timeout time.Duration, name string, args ...string) error {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, stderr, err := c.runner.Run(runCtx, name, args...)
	if err != nil {
		return err
	}
	if s := strings.TrimSpace(stderr); s != "" {
		c.logger.Debug("external tool diagnostics", "tool", name, "stderr", diagnostic(s))
	}
	return nil
}
