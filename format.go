package md2doc

import (
	"fmt"
	"strings"
)

// Format identifies a conversion target.
type Format string

// Supported formats.
const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatPPTX Format = "pptx"
	FormatTXT  Format = "txt"
	FormatMD   Format = "md"
	FormatHTML Format = "html"
)

// supportedFormats is ordered for help and error messages.
var supportedFormats = []Format{
	FormatDOCX,
	FormatPDF,
	FormatXLSX,
	FormatPPTX,
	FormatTXT,
	FormatMD,
	FormatHTML,
}

// SupportedFormats returns every format accepted by ParseFormat.
func SupportedFormats() []Format {
	out := make([]Format, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

// ParseFormat maps a case-insensitive format token to a Format.
// Surrounding whitespace is ignored.
func ParseFormat(token string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(token)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, token, formatList())
	}
	return f, nil
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	for _, s := range supportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

// Extension returns the file extension for f, including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Upper returns the format name in upper case, as used in status messages.
func (f Format) Upper() string {
	return strings.ToUpper(string(f))
}

func (f Format) String() string {
	return string(f)
}

func formatList() string {
	names := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Tier names the strategy that produced an output file.
type Tier string

// Conversion tiers, in the order renderers attempt them.
const (
	// TierExternal is a direct conversion by the external converter.
	TierExternal Tier = "external"
	// TierHTML is the external converter to HTML, then an HTML-to-PDF engine.
	TierHTML Tier = "html"
	// TierNative is in-process document construction.
	TierNative Tier = "native"
	// TierDirect covers formats that need no converter at all (txt, md, html).
	TierDirect Tier = "direct"
)

func (t Tier) String() string {
	return string(t)
}
