package md2doc

import (
	"context"
	"os"
	"slices"
	"sync"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type runCall struct {
	name string
	args []string
}

// mockRunner records every invocation and answers through respond.
// A nil respond succeeds without output.
type mockRunner struct {
	mu      sync.Mutex
	calls   []runCall
	respond func(ctx context.Context, name string, args []string) (string, string, error)
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, runCall{name: name, args: slices.Clone(args)})
	m.mu.Unlock()

	if m.respond == nil {
		return "", "", nil
	}
	return m.respond(ctx, name, args)
}

func (m *mockRunner) Calls() []runCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// outputArg returns the file a tool invocation writes to: the value after
// "-o" for pandoc, the last argument otherwise.
func outputArg(args []string) string {
	if i := slices.Index(args, "-o"); i >= 0 && i+1 < len(args) {
		return args[i+1]
	}
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

// writesOutput answers like a successful tool: it creates the output file.
func writesOutput(content string) func(context.Context, string, []string) (string, string, error) {
	return func(_ context.Context, _ string, args []string) (string, string, error) {
		if err := os.WriteFile(outputArg(args), []byte(content), 0o600); err != nil {
			return "", "", err
		}
		return "", "", nil
	}
}

type mockPDFRenderer struct {
	mu       sync.Mutex
	pdf      []byte
	err      error
	rendered []string
	closed   bool
}

func (m *mockPDFRenderer) RenderFile(ctx context.Context, htmlPath string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rendered = append(m.rendered, htmlPath)
	if m.err != nil {
		return nil, m.err
	}
	return m.pdf, nil
}

func (m *mockPDFRenderer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Test Options
// ---------------------------------------------------------------------------

func withPDFRenderer(r pdfRenderer) Option {
	return func(c *Converter) {
		c.chrome = r
	}
}

func withID(id string) Option {
	return func(c *Converter) {
		c.newID = func() string { return id }
	}
}
