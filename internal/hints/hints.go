// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2doc/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForToolNotFound returns install or override hints for a missing executable.
func ForToolNotFound(tool string) string {
	switch filepath.Base(tool) {
	case "pandoc":
		return format("install pandoc (https://pandoc.org/installing.html) or set --pandoc / MD2DOC_PANDOC")
	case "wkhtmltopdf":
		return format("install wkhtmltopdf, set MD2DOC_WKHTMLTOPDF, or use --html-engine chrome")
	case "xelatex", "lualatex", "pdflatex":
		return format("install a TeX distribution providing " + filepath.Base(tool))
	case "":
		return ""
	default:
		return format("check that " + tool + " is installed and on PATH")
	}
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising tool bounds for large documents.
func ForTimeout() string {
	return format("for large documents, raise timeouts.* in the config file or MD2DOC_TIMEOUT_*")
}

// ForConfigNotFound suggests --config or the user config location.
// userPath may be empty when the user config directory is unknown.
func ForConfigNotFound(userPath string) string {
	hint := "use --config /path/to/file.yaml"
	if userPath != "" {
		hint += " or create " + userPath
	}
	return format(hint)
}

// ForFontNotFound returns hints for a missing native PDF font.
func ForFontNotFound() string {
	return format("install fonts-dejavu-core or set pdf.fontPath / MD2DOC_FONT_PATH")
}

// ForNoFallback explains that a format depends entirely on pandoc.
func ForNoFallback() string {
	return format("this format has no built-in fallback; run 'md2doc doctor' to check pandoc")
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFormat lists the accepted format tokens.
func ForFormat(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return format("supported formats: " + strings.Join(supported, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
