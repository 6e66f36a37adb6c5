package pipeline

import (
	"regexp"
	"strings"
)

// Highlight markers live in the Unicode Private Use Area so they pass
// through Goldmark untouched; ConvertMarkPlaceholders turns them into
// <mark> tags afterwards, which keeps raw HTML disabled.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
)

// Normalize prepares Markdown for Goldmark: CRLF and CR become LF,
// runs of blank lines collapse to one and ==text== becomes a highlight.
func Normalize(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// ConvertMarkPlaceholders converts highlight placeholders to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.NewReplacer(
		MarkStartPlaceholder, "<mark>",
		MarkEndPlaceholder, "</mark>",
	).Replace(content)
}
