package md2doc

import (
	"fmt"
	"log/slog"
	"time"
)

// HTMLEngine selects the HTML-to-PDF step of the PDF html tier.
type HTMLEngine string

// Supported HTML engines.
const (
	EngineWkhtmltopdf HTMLEngine = "wkhtmltopdf"
	EngineChrome      HTMLEngine = "chrome"
)

// ParseHTMLEngine validates an engine name.
func ParseHTMLEngine(name string) (HTMLEngine, error) {
	switch e := HTMLEngine(name); e {
	case EngineWkhtmltopdf, EngineChrome:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (must be wkhtmltopdf or chrome)", ErrInvalidHTMLEngine, name)
	}
}

// Timeouts bounds each external tool invocation. There are no retries:
// an invocation that exceeds its bound fails its tier.
type Timeouts struct {
	Document  time.Duration // pandoc to DOCX or PPTX
	PDF       time.Duration // pandoc direct to PDF
	HTML      time.Duration // pandoc to the intermediate HTML file
	HTMLToPDF time.Duration // wkhtmltopdf or Chrome
}

// DefaultTimeouts returns the bounds used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Document:  30 * time.Second,
		PDF:       60 * time.Second,
		HTML:      30 * time.Second,
		HTMLToPDF: 60 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTimeouts.
func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Document <= 0 {
		t.Document = d.Document
	}
	if t.PDF <= 0 {
		t.PDF = d.PDF
	}
	if t.HTML <= 0 {
		t.HTML = d.HTML
	}
	if t.HTMLToPDF <= 0 {
		t.HTMLToPDF = d.HTMLToPDF
	}
	return t
}

// Defaults used by NewConverter.
const (
	DefaultPandoc      = "pandoc"
	DefaultPDFEngine   = "xelatex"
	DefaultMainFont    = "DejaVu Sans"
	DefaultWkhtmltopdf = "wkhtmltopdf"
	DefaultFontPath    = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	DefaultFontSize    = 12.0
	DefaultDOCXFont    = "Arial"
	DefaultSheetName   = "المحتوى"
	DefaultColumnWidth = 100.0
)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	pandoc       string
	pdfEngine    string
	mainFont     string
	wkhtmltopdf  string
	htmlEngine   HTMLEngine
	fontPath     string
	fontSize     float64
	docxFont     string
	docxFontSize float64
	sheetName    string
	columnWidth  float64
	timeouts     Timeouts
}

func defaultConfig() converterConfig {
	return converterConfig{
		pandoc:       DefaultPandoc,
		pdfEngine:    DefaultPDFEngine,
		mainFont:     DefaultMainFont,
		wkhtmltopdf:  DefaultWkhtmltopdf,
		htmlEngine:   EngineWkhtmltopdf,
		fontPath:     DefaultFontPath,
		fontSize:     DefaultFontSize,
		docxFont:     DefaultDOCXFont,
		docxFontSize: DefaultFontSize,
		sheetName:    DefaultSheetName,
		columnWidth:  DefaultColumnWidth,
		timeouts:     DefaultTimeouts(),
	}
}

// Option configures a Converter.
type Option func(*Converter)

// WithPandoc sets the external converter executable (name or path).
// An empty name keeps the default.
func WithPandoc(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.pandoc = name
		}
	}
}

// WithPDFEngine sets the LaTeX engine passed to pandoc for direct PDF output.
func WithPDFEngine(engine string) Option {
	return func(c *Converter) {
		if engine != "" {
			c.cfg.pdfEngine = engine
		}
	}
}

// WithMainFont sets the font family pandoc's LaTeX engine renders with.
func WithMainFont(font string) Option {
	return func(c *Converter) {
		if font != "" {
			c.cfg.mainFont = font
		}
	}
}

// WithHTMLEngine selects the HTML-to-PDF engine. NewConverter rejects
// unknown names with ErrInvalidHTMLEngine.
func WithHTMLEngine(engine HTMLEngine) Option {
	return func(c *Converter) {
		c.cfg.htmlEngine = engine
	}
}

// WithWkhtmltopdf sets the wkhtmltopdf executable (name or path).
func WithWkhtmltopdf(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.wkhtmltopdf = name
		}
	}
}

// WithFontPath sets the TrueType font loaded by the native PDF renderer.
// When the file is missing the renderer falls back to a core font.
func WithFontPath(path string) Option {
	return func(c *Converter) {
		c.cfg.fontPath = path
	}
}

// WithFontSize sets the native PDF font size in points.
// Panics if size <= 0 (programmer error, similar to time.NewTicker).
func WithFontSize(size float64) Option {
	if size <= 0 {
		panic("md2doc: WithFontSize size must be positive")
	}
	return func(c *Converter) {
		c.cfg.fontSize = size
	}
}

// WithDOCXFont sets the base font of native DOCX documents.
// Panics if size <= 0.
func WithDOCXFont(name string, size float64) Option {
	if size <= 0 {
		panic("md2doc: WithDOCXFont size must be positive")
	}
	return func(c *Converter) {
		if name != "" {
			c.cfg.docxFont = name
		}
		c.cfg.docxFontSize = size
	}
}

// WithSheetName sets the XLSX worksheet title.
func WithSheetName(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.sheetName = name
		}
	}
}

// WithColumnWidth sets the XLSX column A width in characters.
// Panics if width <= 0.
func WithColumnWidth(width float64) Option {
	if width <= 0 {
		panic("md2doc: WithColumnWidth width must be positive")
	}
	return func(c *Converter) {
		c.cfg.columnWidth = width
	}
}

// WithTimeouts sets the external tool bounds. Zero fields keep their defaults.
func WithTimeouts(t Timeouts) Option {
	return func(c *Converter) {
		c.cfg.timeouts = t.withDefaults()
	}
}

// WithLogger sets the logger receiving tier failures and degradations.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCommandRunner replaces the process runner, mainly for tests.
func WithCommandRunner(r CommandRunner) Option {
	return func(c *Converter) {
		if r != nil {
			c.runner = r
		}
	}
}
