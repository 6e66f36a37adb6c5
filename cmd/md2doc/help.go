package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2doc <input.md> <output> <format> [flags]")
	fmt.Fprintln(w, "       md2doc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats: docx, pdf, xlsx, pptx, txt, md, html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a markdown file (same as the positional form)")
	fmt.Fprintln(w, "  doctor     Check external tools, fonts and the temp directory")
	fmt.Fprintln(w, "  serve      Serve conversions over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2doc help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show tier attempts and tool diagnostics")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2doc convert <input.md> <output> <format> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file. DOCX and PDF fall back to built-in writers")
	fmt.Fprintln(w, "when pandoc is unavailable; PPTX requires pandoc.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --pandoc <path>       pandoc executable")
	fmt.Fprintln(w, "      --html-engine <s>     HTML-to-PDF engine: wkhtmltopdf, chrome")
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 conversion failed, 2 usage, 3 I/O")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2doc doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report which conversion tiers are available on this machine.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	printCommonFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2doc serve [--addr <host:port>] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  GET /health                      OK")
	fmt.Fprintln(w, "  GET /api/convert/{id}/{format}   convert <store>/<id>.md")
	fmt.Fprintln(w, "  GET /metrics                     Prometheus metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default "+defaultAddr+")")
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2doc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2doc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
