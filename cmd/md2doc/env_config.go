package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alnah/go-md2doc/internal/config"
)

// envPrefix namespaces every recognized environment variable.
const envPrefix = "MD2DOC_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2DOC_CONFIG

	// Tools
	Pandoc      string // MD2DOC_PANDOC
	Wkhtmltopdf string // MD2DOC_WKHTMLTOPDF

	// PDF
	PDFEngine  string // MD2DOC_PDF_ENGINE
	MainFont   string // MD2DOC_MAIN_FONT
	HTMLEngine string // MD2DOC_HTML_ENGINE
	FontPath   string // MD2DOC_FONT_PATH

	// Timeouts, as Go durations
	TimeoutDocument  string // MD2DOC_TIMEOUT_DOCUMENT
	TimeoutPDF       string // MD2DOC_TIMEOUT_PDF
	TimeoutHTML      string // MD2DOC_TIMEOUT_HTML
	TimeoutHTMLToPDF string // MD2DOC_TIMEOUT_HTML_TO_PDF

	// Logging
	LogLevel  string // MD2DOC_LOG_LEVEL
	LogFormat string // MD2DOC_LOG_FORMAT

	// Server
	Addr      string // MD2DOC_ADDR
	StoreDir  string // MD2DOC_STORE_DIR
	OutputDir string // MD2DOC_OUTPUT_DIR
}

// knownEnvVars lists valid MD2DOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = []string{
	"MD2DOC_CONFIG",
	"MD2DOC_PANDOC",
	"MD2DOC_WKHTMLTOPDF",
	"MD2DOC_PDF_ENGINE",
	"MD2DOC_MAIN_FONT",
	"MD2DOC_HTML_ENGINE",
	"MD2DOC_FONT_PATH",
	"MD2DOC_TIMEOUT_DOCUMENT",
	"MD2DOC_TIMEOUT_PDF",
	"MD2DOC_TIMEOUT_HTML",
	"MD2DOC_TIMEOUT_HTML_TO_PDF",
	"MD2DOC_LOG_LEVEL",
	"MD2DOC_LOG_FORMAT",
	"MD2DOC_ADDR",
	"MD2DOC_STORE_DIR",
	"MD2DOC_OUTPUT_DIR",
}

// loadEnvConfig reads every recognized MD2DOC_* value through getenv.
// Values are validated later, together with the config file.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:       getenv("MD2DOC_CONFIG"),
		Pandoc:           getenv("MD2DOC_PANDOC"),
		Wkhtmltopdf:      getenv("MD2DOC_WKHTMLTOPDF"),
		PDFEngine:        getenv("MD2DOC_PDF_ENGINE"),
		MainFont:         getenv("MD2DOC_MAIN_FONT"),
		HTMLEngine:       getenv("MD2DOC_HTML_ENGINE"),
		FontPath:         getenv("MD2DOC_FONT_PATH"),
		TimeoutDocument:  getenv("MD2DOC_TIMEOUT_DOCUMENT"),
		TimeoutPDF:       getenv("MD2DOC_TIMEOUT_PDF"),
		TimeoutHTML:      getenv("MD2DOC_TIMEOUT_HTML"),
		TimeoutHTMLToPDF: getenv("MD2DOC_TIMEOUT_HTML_TO_PDF"),
		LogLevel:         getenv("MD2DOC_LOG_LEVEL"),
		LogFormat:        getenv("MD2DOC_LOG_FORMAT"),
		Addr:             getenv("MD2DOC_ADDR"),
		StoreDir:         getenv("MD2DOC_STORE_DIR"),
		OutputDir:        getenv("MD2DOC_OUTPUT_DIR"),
	}
}

// warnUnknownEnvVars prints a warning for unrecognized MD2DOC_* variables.
// Helps catch typos like MD2DOC_PANDOC_BIN instead of MD2DOC_PANDOC.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !slices.Contains(knownEnvVars, name) {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with every variable that is
// set. Flags are merged afterwards, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Tools.Pandoc, env.Pandoc)
	set(&cfg.Tools.Wkhtmltopdf, env.Wkhtmltopdf)

	set(&cfg.PDF.Engine, env.PDFEngine)
	set(&cfg.PDF.MainFont, env.MainFont)
	set(&cfg.PDF.HTMLEngine, env.HTMLEngine)
	set(&cfg.PDF.FontPath, env.FontPath)

	set(&cfg.Timeouts.Document, env.TimeoutDocument)
	set(&cfg.Timeouts.PDF, env.TimeoutPDF)
	set(&cfg.Timeouts.HTML, env.TimeoutHTML)
	set(&cfg.Timeouts.HTMLToPDF, env.TimeoutHTMLToPDF)

	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Log.Format, env.LogFormat)

	set(&cfg.Server.Addr, env.Addr)
	set(&cfg.Server.StoreDir, env.StoreDir)
	set(&cfg.Server.OutputDir, env.OutputDir)
}
