// Package md2doc converts Markdown documents, including right-to-left
// Arabic text, to DOCX, PDF, XLSX, PPTX, plain text, Markdown and HTML.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := md2doc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.ConvertFile(ctx, "notes.md", "notes.pdf", "pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Tier) // external, html, native or direct
//
// # Tiers
//
// Each format is produced by an ordered list of strategies. The first one
// that succeeds wins; a failure is logged and the next one runs:
//
//   - docx: pandoc, then the built-in OOXML writer
//   - pdf:  pandoc with a LaTeX engine, then pandoc to HTML printed by
//     wkhtmltopdf or headless Chrome, then go-pdf/fpdf
//   - xlsx: excelize only
//   - pptx: pandoc only, failure is reported with ErrNoFallback
//   - txt, md, html: written directly
//
// Native tiers use ParseStructure, a line classifier that recognizes three
// heading levels, bullets, numbered items and paragraphs. The plain text
// output and the native PDF use CleanMarkdown instead.
//
// # External Tools
//
// Tools run through a CommandRunner with a per-tier deadline (see
// Timeouts). Every call stages its source in a private temporary
// directory removed when the call returns, so concurrent conversions never
// share files.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2doc.NewConverter(
//	    md2doc.WithHTMLEngine(md2doc.EngineChrome),
//	    md2doc.WithFontPath("/usr/share/fonts/truetype/noto/NotoNaskhArabic-Regular.ttf"),
//	    md2doc.WithLogger(slog.Default()),
//	)
//
// # Error Handling
//
// Errors wrap sentinel values and can be checked with errors.Is:
//
//	if errors.Is(err, md2doc.ErrUnsupportedFormat) {
//	    // unknown format token
//	}
//	if errors.Is(err, md2doc.ErrNoFallback) {
//	    // pptx without a working pandoc
//	}
package md2doc
