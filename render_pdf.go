package md2doc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/alnah/go-md2doc/internal/fileutil"
)

// Native PDF layout, in millimetres.
const (
	pdfLineHeight   = 10
	pdfUnicodeFont  = "DejaVu"
	pdfFallbackFont = "Arial"
)

// renderPDF walks the three tiers: pandoc with a LaTeX engine, pandoc to
// HTML followed by an HTML-to-PDF engine, then native construction.
// Each tier runs once.
func (c *Converter) renderPDF(ctx context.Context, j *job) (Tier, error) {
	err := c.pandoc(ctx, j, c.cfg.timeouts.PDF, j.out,
		"--pdf-engine="+c.cfg.pdfEngine,
		"-V", "mainfont="+c.cfg.mainFont,
	)
	if err == nil {
		return TierExternal, nil
	}
	if err := tierFailed(ctx, j, TierExternal, c.cfg.pandoc, err); err != nil {
		return "", err
	}

	tool, err := c.pdfViaHTML(ctx, j)
	if err == nil {
		return TierHTML, nil
	}
	if err := tierFailed(ctx, j, TierHTML, tool, err); err != nil {
		return "", err
	}

	if err := c.buildPDF(j); err != nil {
		return "", err
	}
	return TierNative, nil
}

// pdfViaHTML converts the source to a staged HTML file with pandoc, then
// prints it with the configured engine. It returns the tool that failed.
func (c *Converter) pdfViaHTML(ctx context.Context, j *job) (string, error) {
	htmlPath, err := j.staging.path(stagedHTML)
	if err != nil {
		return c.cfg.pandoc, err
	}
	if err := c.pandoc(ctx, j, c.cfg.timeouts.HTML, htmlPath, "--standalone"); err != nil {
		return c.cfg.pandoc, err
	}

	if c.cfg.htmlEngine == EngineChrome {
		return string(EngineChrome), c.printWithChrome(ctx, htmlPath, j.out)
	}
	return c.cfg.wkhtmltopdf, c.runTool(ctx, c.cfg.timeouts.HTMLToPDF, c.cfg.wkhtmltopdf, htmlPath, j.out)
}

// printWithChrome renders htmlPath in headless Chrome and writes the PDF.
func (c *Converter) printWithChrome(ctx context.Context, htmlPath, out string) error {
	renderer := c.chromePDF()

	renderCtx, cancel := context.WithTimeout(ctx, c.cfg.timeouts.HTMLToPDF)
	defer cancel()

	pdf, err := renderer.RenderFile(renderCtx, htmlPath)
	if err != nil {
		if errors.Is(renderCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("%w: chrome: %v", ErrToolTimeout, err)
		}
		return err
	}
	return writeOutput(out, pdf)
}

// buildPDF writes the cleaned text one right-aligned block per non-blank
// line. The configured TrueType font is optional: without it the core
// Arial font is used, text is encoded to Windows-1252 and lines outside
// that charset are skipped with a warning.
func (c *Converter) buildPDF(j *job) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	var encoder *encoding.Encoder
	if !c.loadPDFFont(pdf, j) {
		encoder = charmap.Windows1252.NewEncoder()
	}

	skipped := 0
	for line := range strings.SplitSeq(CleanMarkdown(j.markdown), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if encoder != nil {
			encoded, err := encoder.String(line)
			if err != nil {
				skipped++
				j.log.Warn("line skipped: not representable in fallback font", "line", line)
				continue
			}
			line = encoded
		}

		pdf.MultiCell(0, pdfLineHeight, line, "", "R", false)
		if !pdf.Ok() {
			skipped++
			j.log.Warn("line skipped: render failed", "line", line, "error", pdf.Error())
			pdf.ClearError()
		}
	}

	if err := pdf.OutputFileAndClose(j.out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if skipped > 0 {
		j.log.Warn("native PDF written with skipped lines", "skipped", skipped)
	}
	return nil
}

// loadPDFFont registers the configured TrueType font and reports whether
// it is in use. Any failure degrades to the core font.
func (c *Converter) loadPDFFont(pdf *fpdf.Fpdf, j *job) bool {
	if c.cfg.fontPath != "" && fileutil.FileExists(c.cfg.fontPath) {
		data, err := os.ReadFile(c.cfg.fontPath)
		if err == nil {
			pdf.AddUTF8FontFromBytes(pdfUnicodeFont, "", data)
			if pdf.Ok() {
				pdf.SetFont(pdfUnicodeFont, "", c.cfg.fontSize)
				if pdf.Ok() {
					return true
				}
			}
			err = pdf.Error()
			pdf.ClearError()
		}
		j.log.Warn("PDF font unusable, falling back to core font", "font", c.cfg.fontPath, "error", err)
	} else {
		j.log.Warn("PDF font not found, falling back to core font", "font", c.cfg.fontPath)
	}

	pdf.SetFont(pdfFallbackFont, "", c.cfg.fontSize)
	return false
}
