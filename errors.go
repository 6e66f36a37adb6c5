package md2doc

import "errors"

// Sentinel errors for library operations.
var (
	// Request errors, reported before any renderer runs.
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrReadInput         = errors.New("failed to read input file")
	ErrEmptyOutputPath   = errors.New("output path cannot be empty")

	// External tool errors. Each one ends the current tier and triggers the next.
	ErrToolNotFound = errors.New("external tool not found")
	ErrToolTimeout  = errors.New("external tool timed out")
	ErrToolFailed   = errors.New("external tool failed")

	// Renderer errors.
	ErrNoFallback    = errors.New("no fallback available for format")
	ErrDocumentBuild = errors.New("document construction failed")
	ErrWriteOutput   = errors.New("failed to write output file")

	// Headless Chrome errors (chrome HTML engine only).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Option validation errors.
	ErrInvalidHTMLEngine = errors.New("invalid HTML engine")
)
