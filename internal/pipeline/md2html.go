package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// pageTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const pageTemplate = `<!DOCTYPE html>
<html lang="%s" dir="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Page describes the document wrapper around converted content.
type Page struct {
	Title string
	Lang  string
	Dir   string // "rtl" or "ltr"
}

// DefaultPage is an Arabic right-to-left page.
func DefaultPage() Page {
	return Page{Title: "Document", Lang: "ar", Dir: "rtl"}
}

func (p Page) withDefaults() Page {
	d := DefaultPage()
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.Lang == "" {
		p.Lang = d.Lang
	}
	if p.Dir != "ltr" {
		p.Dir = d.Dir
	}
	return p
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, page Page) (string, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Goldmark has no context support, so conversion runs in a goroutine
// and ctx only bounds the wait.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string, page Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	page = page.withDefaults()

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		body := ConvertMarkPlaceholders(buf.String())
		done <- result{html: fmt.Sprintf(pageTemplate,
			html.EscapeString(page.Lang),
			html.EscapeString(page.Dir),
			html.EscapeString(page.Title),
			body,
		)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
