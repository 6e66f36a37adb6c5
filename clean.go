package md2doc

import (
	"regexp"
	"strings"
)

var (
	// inlineLink matches [label](url) and captures the label.
	inlineLink = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)

	// headingMarker matches runs of "#" followed by blanks, at line start
	// or after a blank. Blanks include no-break spaces but never a line
	// break. The leading blank is kept through $1.
	headingMarker = regexp.MustCompile(`(?m)(^|[\t\p{Zs}])(?:#+[\t\p{Zs}]+)+`)

	// emphasisMarkers are removed unconditionally, longest first.
	emphasisMarkers = strings.NewReplacer("**", "", "*", "", "`", "")
)

// CleanMarkdown strips Markdown syntax down to plain text.
//
// Steps run in order: links become their label, bold/italic/code markers
// are deleted wherever they appear, then heading markers are removed.
// Markers are not paired, so literal asterisks and backticks are lost too.
// Line breaks are preserved.
func CleanMarkdown(src string) string {
	out := inlineLink.ReplaceAllString(src, "$1")
	out = emphasisMarkers.Replace(out)
	out = headingMarker.ReplaceAllString(out, "$1")
	return out
}
