package main

import (
	"fmt"
	"io"
	"log/slog"

	md2doc "github.com/alnah/go-md2doc"
	"github.com/alnah/go-md2doc/internal/config"
	"github.com/alnah/go-md2doc/internal/logging"
)

// loadSettings resolves the effective configuration for a command:
// config file (from --config or MD2DOC_CONFIG), then environment
// overrides. Command flags are merged by the caller before validate.
func loadSettings(common commonFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	cfg := config.DefaultConfig()
	source := common.config
	if source == "" {
		source = envCfg.ConfigPath
	}
	if source != "" {
		loaded, err := config.LoadConfig(source)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if common.logFormat != "" {
		cfg.Log.Format = common.logFormat
	}
	return cfg, nil
}

// validate re-checks cfg once every override has been applied.
func validate(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// newLogger builds the stderr logger. --verbose forces debug and --quiet
// forces error; otherwise the configured level applies.
func newLogger(cfg *config.Config, common commonFlags, w io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}
	return logging.New(w, level, cfg.Log.Format)
}

// converterOptions maps a validated config onto library options.
// Zero values keep the library defaults.
func converterOptions(cfg *config.Config, logger *slog.Logger, runner md2doc.CommandRunner) ([]md2doc.Option, error) {
	opts := []md2doc.Option{
		md2doc.WithLogger(logger),
		md2doc.WithCommandRunner(runner),
		md2doc.WithPandoc(cfg.Tools.Pandoc),
		md2doc.WithWkhtmltopdf(cfg.Tools.Wkhtmltopdf),
		md2doc.WithPDFEngine(cfg.PDF.Engine),
		md2doc.WithMainFont(cfg.PDF.MainFont),
		md2doc.WithSheetName(cfg.XLSX.SheetName),
	}

	if cfg.PDF.HTMLEngine != "" {
		engine, err := md2doc.ParseHTMLEngine(cfg.PDF.HTMLEngine)
		if err != nil {
			return nil, err
		}
		opts = append(opts, md2doc.WithHTMLEngine(engine))
	}
	if cfg.PDF.FontPath != "" {
		opts = append(opts, md2doc.WithFontPath(cfg.PDF.FontPath))
	}
	if cfg.PDF.FontSize > 0 {
		opts = append(opts, md2doc.WithFontSize(cfg.PDF.FontSize))
	}
	if cfg.DOCX.Font != "" || cfg.DOCX.FontSize > 0 {
		size := md2doc.DefaultFontSize
		if cfg.DOCX.FontSize > 0 {
			size = float64(cfg.DOCX.FontSize)
		}
		opts = append(opts, md2doc.WithDOCXFont(cfg.DOCX.Font, size))
	}
	if cfg.XLSX.ColumnWidth > 0 {
		opts = append(opts, md2doc.WithColumnWidth(cfg.XLSX.ColumnWidth))
	}

	d, err := cfg.Timeouts.Parse()
	if err != nil {
		return nil, err
	}
	opts = append(opts, md2doc.WithTimeouts(md2doc.Timeouts{
		Document:  d.Document,
		PDF:       d.PDF,
		HTML:      d.HTML,
		HTMLToPDF: d.HTMLToPDF,
	}))

	return opts, nil
}

// newConverter builds a converter from a validated config.
func newConverter(cfg *config.Config, logger *slog.Logger, env *Environment) (*md2doc.Converter, error) {
	opts, err := converterOptions(cfg, logger, env.Runner)
	if err != nil {
		return nil, err
	}
	return md2doc.NewConverter(opts...)
}
