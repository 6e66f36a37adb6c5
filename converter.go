package md2doc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-md2doc/internal/logging"
	"github.com/alnah/go-md2doc/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ CommandRunner          = (*ExecRunner)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
)

// Request is one unit of work.
type Request struct {
	Markdown   string // source text, may be empty
	OutputPath string // file to create or overwrite
	Format     Format // target format, matched case-insensitively

	// SourceDir resolves relative image and link paths in html output.
	// Empty leaves them as written.
	SourceDir string
}

// Result describes a successful conversion.
type Result struct {
	ID         string // per-call identifier, also used in staging and logs
	Format     Format
	OutputPath string
	Tier       Tier          // strategy that produced the file
	Duration   time.Duration // wall time of the call
}

// Converter maps formats to renderers and runs them.
// A Converter is safe for concurrent use: each call stages its files
// in its own directory.
type Converter struct {
	cfg    converterConfig
	runner CommandRunner
	logger *slog.Logger
	html   pipeline.HTMLConverter

	// chrome renders the html tier when the chrome engine is selected.
	// Created on first use unless injected. Guarded by chromeMu.
	chromeMu sync.Mutex
	chrome   pdfRenderer

	newID func() string
}

// NewConverter creates a Converter with default configuration.
// Returns ErrInvalidHTMLEngine if WithHTMLEngine named an unknown engine.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    defaultConfig(),
		runner: &ExecRunner{},
		logger: logging.NewNop(),
		html:   pipeline.NewGoldmarkConverter(),
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := ParseHTMLEngine(string(c.cfg.htmlEngine)); err != nil {
		return nil, err
	}
	return c, nil
}

// Convert renders req and returns where the result came from.
// The context bounds the whole call; each external tool additionally
// gets its own timeout. Recovers from internal panics so renderer
// bugs surface as errors.
func (c *Converter) Convert(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	if req.OutputPath == "" {
		return nil, ErrEmptyOutputPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := c.newID()
	st := newStaging(id)
	defer st.close()

	j := &job{
		id:        id,
		markdown:  req.Markdown,
		out:       req.OutputPath,
		sourceDir: req.SourceDir,
		staging:   st,
		log:       c.logger.With("id", id, "format", format.String()),
	}

	start := time.Now()
	tier, err := c.dispatch(ctx, format, j)
	if err != nil {
		j.log.Error("conversion failed", "error", err)
		return nil, err
	}

	res := &Result{
		ID:         id,
		Format:     format,
		OutputPath: req.OutputPath,
		Tier:       tier,
		Duration:   time.Since(start),
	}
	j.log.Info("conversion succeeded", "tier", tier.String(), "output", req.OutputPath, "duration", res.Duration)
	return res, nil
}

// ConvertFile reads inputPath and converts it into outputPath. The format
// is checked before the input is read, so an unsupported token never
// touches the filesystem. Read failures wrap ErrReadInput.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath, format string) (*Result, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if outputPath == "" {
		return nil, ErrEmptyOutputPath
	}

	data, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	return c.Convert(ctx, Request{
		Markdown:   string(data),
		OutputPath: outputPath,
		Format:     f,
		SourceDir:  filepath.Dir(inputPath),
	})
}

// Close releases the headless browser if the chrome engine was used.
func (c *Converter) Close() error {
	c.chromeMu.Lock()
	defer c.chromeMu.Unlock()
	if c.chrome != nil {
		return c.chrome.Close()
	}
	return nil
}

// chromePDF returns the chrome renderer, creating it on first use.
func (c *Converter) chromePDF() pdfRenderer {
	c.chromeMu.Lock()
	defer c.chromeMu.Unlock()
	if c.chrome == nil {
		c.chrome = newChromeRenderer()
	}
	return c.chrome
}

// job carries one call's state through a renderer.
type job struct {
	id        string
	markdown  string
	out       string
	sourceDir string
	staging   *staging
	source    string // staged Markdown path, set on first use
	log       *slog.Logger
}

func (c *Converter) dispatch(ctx context.Context, format Format, j *job) (Tier, error) {
	switch format {
	case FormatDOCX:
		return c.renderDOCX(ctx, j)
	case FormatPDF:
		return c.renderPDF(ctx, j)
	case FormatXLSX:
		return c.renderXLSX(j)
	case FormatPPTX:
		return c.renderPPTX(ctx, j)
	case FormatTXT:
		return c.renderTXT(j)
	case FormatMD:
		return c.renderMD(j)
	case FormatHTML:
		return c.renderHTML(ctx, j)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// stagedSource writes the Markdown source to the staging directory once
// and returns its path.
func (j *job) stagedSource() (string, error) {
	if j.source != "" {
		return j.source, nil
	}
	src, err := j.staging.write(stagedMarkdown, j.markdown)
	if err != nil {
		return "", err
	}
	j.source = src
	return src, nil
}

// pandoc runs the external converter on the staged source.
func (c *Converter) pandoc(ctx context.Context, j *job, timeout time.Duration, out string, extra ...string) error {
	src, err := j.stagedSource()
	if err != nil {
		return err
	}
	args := append([]string{src, "-o", out}, extra...)
	return c.runTool(ctx, timeout, c.cfg.pandoc, args...)
}

// tierFailed logs a failed tier. It returns the caller's context error
// when that context has ended, in which case no further tier may run.
func tierFailed(ctx context.Context, j *job, tier Tier, tool string, err error) error {
	j.log.Warn("tier failed", "tier", tier.String(), "tool", tool, "error", err)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return nil
}

// writeOutput writes content to the output path with the standard permissions.
func writeOutput(path string, content []byte) error {
	if err := os.WriteFile(path, content, outputFilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// outputFilePermissions is rw-r--r--.
const outputFilePermissions = 0o644
