// Package pipeline renders Markdown to a standalone HTML document.
//
// It backs the html output format and has three stages:
//   - Markdown normalization (line endings, blank runs, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark, wrapped in a right-to-left page
//   - Stylesheet injection and optional rewriting of relative links
//
// Nothing here invokes an external tool.
package pipeline
