//go:build !windows

package md2doc

// Notes:
// - These tests spawn /bin/sh and sleep; they are skipped when sh is absent.

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// ---------------------------------------------------------------------------
// TestExecRunner - Real process classification
// ---------------------------------------------------------------------------

func TestExecRunner_Success(t *testing.T) {
	t.Parallel()
	requireShell(t)

	stdout, stderr, err := (&ExecRunner{}).Run(context.Background(), "sh", "-c", "echo out; echo warn >&2")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "out" || strings.TrimSpace(stderr) != "warn" {
		t.Errorf("stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestExecRunner_Errors(t *testing.T) {
	t.Parallel()
	requireShell(t)

	tests := []struct {
		name     string
		cmd      string
		args     []string
		timeout  time.Duration
		wantErr  error
		wantText string
	}{
		{"non-zero exit", "sh", []string{"-c", "echo broken input >&2; exit 3"}, time.Minute, ErrToolFailed, "broken input"},
		{"exit status reported", "sh", []string{"-c", "exit 7"}, time.Minute, ErrToolFailed, "status 7"},
		{"missing binary", "md2doc-no-such-tool", nil, time.Minute, ErrToolNotFound, ""},
		{"missing path", filepath.Join(t.TempDir(), "nope"), nil, time.Minute, ErrToolNotFound, ""},
		{"deadline", "sleep", []string{"5"}, 100 * time.Millisecond, ErrToolTimeout, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), tt.timeout)
			defer cancel()

			_, _, err := (&ExecRunner{}).Run(ctx, tt.cmd, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not contain %q", err, tt.wantText)
			}
		})
	}
}

func TestExecRunner_CancelledContext(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := (&ExecRunner{}).Run(ctx, "sh", "-c", "true")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestDiagnostic - Stderr excerpts
// ---------------------------------------------------------------------------

func TestDiagnostic(t *testing.T) {
	t.Parallel()

	if got := diagnostic("  \n"); got != "(no diagnostic output)" {
		t.Errorf("diagnostic(blank) = %q", got)
	}
	if got := diagnostic(" x \n"); got != "x" {
		t.Errorf("diagnostic(x) = %q", got)
	}
	long := strings.Repeat("e", maxDiagnosticLen+50)
	if got := diagnostic(long); len(got) != maxDiagnosticLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("diagnostic(long) has length %d", len(got))
	}
}
