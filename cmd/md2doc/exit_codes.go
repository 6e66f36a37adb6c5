package main

import (
	"errors"
	"os"

	md2doc "github.com/alnah/go-md2doc"
	"github.com/alnah/go-md2doc/internal/config"
	"github.com/alnah/go-md2doc/internal/logging"
)

// Exit codes for the md2doc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitConversion = 1 // Every tier failed, or an unexpected error
	ExitUsage      = 2 // Invalid arguments, format, flags or config
	ExitIO         = 3 // Unreadable input, unwritable output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, md2doc.ErrUnsupportedFormat) ||
		errors.Is(err, md2doc.ErrEmptyOutputPath) ||
		errors.Is(err, md2doc.ErrInvalidHTMLEngine) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, md2doc.ErrReadInput) ||
		errors.Is(err, md2doc.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitConversion
}
