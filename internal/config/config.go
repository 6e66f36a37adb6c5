// Package config loads md2doc configuration files.
//
// A config file only overrides what it names. Zero values mean "use the
// library default", so an empty file is valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2doc/internal/fileutil"
	"github.com/alnah/go-md2doc/internal/logging"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxToolLength      = 4096 // executable name or path
	MaxFontLength      = 200  // font family name
	MaxPathLength      = 4096 // font file, store and output directories
	MaxSheetNameLength = 31   // Excel limit
	MaxAddrLength      = 256  // host:port
)

// Numeric limits.
const (
	maxFontSize    = 400
	maxColumnWidth = 255 // Excel limit
)

// appDirName is the directory under the user config dir searched by name.
const appDirName = "go-md2doc"

// Config holds all configuration for the CLI and the HTTP server.
type Config struct {
	Tools    ToolsConfig    `yaml:"tools"`
	PDF      PDFConfig      `yaml:"pdf"`
	DOCX     DOCXConfig     `yaml:"docx"`
	XLSX     XLSXConfig     `yaml:"xlsx"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// ToolsConfig names the external executables.
type ToolsConfig struct {
	Pandoc      string `yaml:"pandoc"`
	Wkhtmltopdf string `yaml:"wkhtmltopdf"`
}

// PDFConfig defines the PDF tiers.
type PDFConfig struct {
	Engine     string  `yaml:"engine"`     // LaTeX engine for pandoc (xelatex)
	MainFont   string  `yaml:"mainFont"`   // font passed to the LaTeX engine
	HTMLEngine string  `yaml:"htmlEngine"` // "wkhtmltopdf" or "chrome"
	FontPath   string  `yaml:"fontPath"`   // TrueType font for the native tier
	FontSize   float64 `yaml:"fontSize"`
}

// DOCXConfig defines the built-in DOCX writer.
type DOCXConfig struct {
	Font     string `yaml:"font"`
	FontSize int    `yaml:"fontSize"` // points
}

// XLSXConfig defines the spreadsheet layout.
type XLSXConfig struct {
	SheetName   string  `yaml:"sheetName"`
	ColumnWidth float64 `yaml:"columnWidth"`
}

// TimeoutsConfig holds Go duration strings ("30s", "2m").
type TimeoutsConfig struct {
	Document  string `yaml:"document"`
	PDF       string `yaml:"pdf"`
	HTML      string `yaml:"html"`
	HTMLToPDF string `yaml:"htmlToPdf"`
}

// LogConfig defines logger level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig defines the serve command.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StoreDir  string `yaml:"storeDir"`  // where <id>.md sources are read
	OutputDir string `yaml:"outputDir"` // where converted files are written
}

// Durations are parsed timeouts. A zero field means unset.
type Durations struct {
	Document  time.Duration
	PDF       time.Duration
	HTML      time.Duration
	HTMLToPDF time.Duration
}

// Parse converts the duration strings. Empty strings stay zero.
func (t TimeoutsConfig) Parse() (Durations, error) {
	var d Durations
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"timeouts.document", t.Document, &d.Document},
		{"timeouts.pdf", t.PDF, &d.PDF},
		{"timeouts.html", t.HTML, &d.HTML},
		{"timeouts.htmlToPdf", t.HTMLToPDF, &d.HTMLToPDF},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		v, err := time.ParseDuration(f.value)
		if err != nil {
			return Durations{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.name, err)
		}
		if v <= 0 {
			return Durations{}, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, f.name, f.value)
		}
		*f.dst = v
	}
	return d, nil
}

// Validate checks field lengths, ranges and enumerations.
// Called automatically by LoadConfig; the CLI calls it again after
// environment overrides are applied.
func (c *Config) Validate() error {
	lengths := []struct {
		name  string
		value string
		max   int
	}{
		{"tools.pandoc", c.Tools.Pandoc, MaxToolLength},
		{"tools.wkhtmltopdf", c.Tools.Wkhtmltopdf, MaxToolLength},
		{"pdf.engine", c.PDF.Engine, MaxToolLength},
		{"pdf.mainFont", c.PDF.MainFont, MaxFontLength},
		{"pdf.fontPath", c.PDF.FontPath, MaxPathLength},
		{"docx.font", c.DOCX.Font, MaxFontLength},
		{"xlsx.sheetName", c.XLSX.SheetName, MaxSheetNameLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"server.storeDir", c.Server.StoreDir, MaxPathLength},
		{"server.outputDir", c.Server.OutputDir, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.name, l.value, l.max); err != nil {
			return err
		}
	}

	switch c.PDF.HTMLEngine {
	case "", "wkhtmltopdf", "chrome":
	default:
		return fmt.Errorf("%w: pdf.htmlEngine: %q (must be wkhtmltopdf or chrome)", ErrInvalidValue, c.PDF.HTMLEngine)
	}

	if c.PDF.FontSize < 0 || c.PDF.FontSize > maxFontSize {
		return fmt.Errorf("%w: pdf.fontSize: must be between 0 and %d, got %g", ErrInvalidValue, maxFontSize, c.PDF.FontSize)
	}
	if c.DOCX.FontSize < 0 || c.DOCX.FontSize > maxFontSize {
		return fmt.Errorf("%w: docx.fontSize: must be between 0 and %d, got %d", ErrInvalidValue, maxFontSize, c.DOCX.FontSize)
	}
	if c.XLSX.ColumnWidth < 0 || c.XLSX.ColumnWidth > maxColumnWidth {
		return fmt.Errorf("%w: xlsx.columnWidth: must be between 0 and %d, got %g", ErrInvalidValue, maxColumnWidth, c.XLSX.ColumnWidth)
	}

	if _, err := c.Timeouts.Parse(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
	}
	if err := logging.ValidateFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %v", ErrInvalidValue, err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every field defers to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UserConfigPath returns where a named config is looked up in the user
// config directory, or "" when that directory is unknown.
func UserConfigPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, name+".yaml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-md2doc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, appDirName))
	}

	tried := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			p := filepath.Join(dir, name+ext)
			if fileutil.FileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
