package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	md2doc "github.com/alnah/go-md2doc"
	"github.com/alnah/go-md2doc/internal/config"
)

// ---------------------------------------------------------------------------
// TestNewLogger - Level resolution
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		common    commonFlags
		wantLevel slog.Level
	}{
		{"default info", "", commonFlags{}, slog.LevelInfo},
		{"configured warn", "warn", commonFlags{}, slog.LevelWarn},
		{"verbose beats config", "error", commonFlags{verbose: true}, slog.LevelDebug},
		{"quiet beats config", "debug", commonFlags{quiet: true}, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{Log: config.LogConfig{Level: tt.level}}
			logger := newLogger(cfg, tt.common, io.Discard)

			ctx := context.Background()
			if !logger.Enabled(ctx, tt.wantLevel) {
				t.Errorf("level %v disabled", tt.wantLevel)
			}
			if tt.wantLevel > slog.LevelDebug && logger.Enabled(ctx, tt.wantLevel-1) {
				t.Errorf("level below %v enabled", tt.wantLevel)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterOptions - Config to library options
// ---------------------------------------------------------------------------

func TestConverterOptions_FullConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Tools:    config.ToolsConfig{Pandoc: "p", Wkhtmltopdf: "w"},
		PDF:      config.PDFConfig{Engine: "lualatex", MainFont: "Amiri", HTMLEngine: "chrome", FontPath: "/f.ttf", FontSize: 11},
		DOCX:     config.DOCXConfig{Font: "Amiri", FontSize: 14},
		XLSX:     config.XLSXConfig{SheetName: "S", ColumnWidth: 50},
		Timeouts: config.TimeoutsConfig{PDF: "90s"},
	}

	opts, err := converterOptions(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	if err != nil {
		t.Fatalf("converterOptions() unexpected error: %v", err)
	}
	conv, err := md2doc.NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	_ = conv.Close()
}

func TestConverterOptions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{"bad engine", &config.Config{PDF: config.PDFConfig{HTMLEngine: "prince"}}, md2doc.ErrInvalidHTMLEngine},
		{"bad duration", &config.Config{Timeouts: config.TimeoutsConfig{HTML: "later"}}, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := converterOptions(tt.cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("converterOptions() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
