package main

import (
	"context"
	"errors"
	"fmt"

	md2doc "github.com/alnah/go-md2doc"
	"github.com/alnah/go-md2doc/internal/config"
	"github.com/alnah/go-md2doc/internal/hints"
	flag "github.com/spf13/pflag"
)

// convertArgs is the number of positionals: input, output, format.
const convertArgs = 3

// runConvertCmd runs one conversion and prints the status line:
// "Conversion to DOCX successful" on stdout or
// "Conversion to DOCX failed" on stderr.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return ExitSuccess
	}
	if err == nil && len(positional) != convertArgs {
		err = fmt.Errorf("%w: expected <input.md> <output> <format>, got %d argument(s)", ErrUsage, len(positional))
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printConvertUsage(env.Stderr)
		return exitCodeFor(err)
	}

	input, output, token := positional[0], positional[1], positional[2]

	// Unsupported tokens fail before anything is loaded or read.
	format, err := md2doc.ParseFormat(token)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Unsupported format: %s%s\n", token, hints.ForFormat(formatNames()))
		return exitCodeFor(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, input, output, format, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "Conversion to %s failed\n", format.Upper())
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Conversion to %s successful\n", format.Upper())
	}
	return ExitSuccess
}

// runConvert resolves settings, builds a converter and converts one file.
func runConvert(ctx context.Context, input, output string, format md2doc.Format, flags *convertFlags, env *Environment) error {
	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := validate(cfg); err != nil {
		return err
	}

	logger := newLogger(cfg, flags.common, env.Stderr)
	conv, err := newConverter(cfg, logger, env)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	_, err = conv.ConvertFile(ctx, input, output, string(format))
	return err
}

// mergeConvertFlags applies explicitly set flags over the config (CLI wins).
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.pandoc != "" {
		cfg.Tools.Pandoc = flags.pandoc
	}
	if flags.htmlEngine != "" {
		cfg.PDF.HTMLEngine = flags.htmlEngine
	}
}

// hintFor picks an actionable hint for a conversion error.
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.UserConfigPath("md2doc"))
	case errors.Is(err, md2doc.ErrNoFallback) && errors.Is(err, md2doc.ErrToolNotFound):
		return hints.ForToolNotFound(md2doc.DefaultPandoc)
	case errors.Is(err, md2doc.ErrNoFallback):
		return hints.ForNoFallback()
	case errors.Is(err, md2doc.ErrToolTimeout):
		return hints.ForTimeout()
	case errors.Is(err, md2doc.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2doc.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

func formatNames() []string {
	formats := md2doc.SupportedFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}
