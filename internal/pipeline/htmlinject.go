package pipeline

import (
	"strings"
)

// BaseStylesheet lays out right-to-left text with a font stack that
// covers Arabic and Latin scripts.
const BaseStylesheet = `
html { direction: rtl; }
body {
  font-family: "DejaVu Sans", "Noto Naskh Arabic", "Amiri", "Arial", sans-serif;
  font-size: 12pt;
  line-height: 1.6;
  text-align: right;
  margin: 2em auto;
  max-width: 50em;
  padding: 0 1em;
}
h1, h2, h3 { line-height: 1.3; }
ul, ol { padding-right: 2em; padding-left: 0; }
pre, code { direction: ltr; text-align: left; font-family: "DejaVu Sans Mono", monospace; }
pre { overflow-x: auto; padding: 0.75em; background: #f6f8fa; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; }
mark { background: #fff3a3; }
`

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
