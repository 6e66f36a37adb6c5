package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&c.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&c.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "show tier attempts and tool diagnostics")
	fs.StringVar(&c.logFormat, "log-format", "", "log format: text or json")
}

// convertFlags holds flags for the convert command.
type convertFlags struct {
	common     commonFlags
	htmlEngine string
	pandoc     string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse runs fs over args. flag.ErrHelp is returned unchanged so callers
// can print usage and exit successfully.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert")
	f.common.register(fs)
	fs.StringVar(&f.htmlEngine, "html-engine", "", "HTML-to-PDF engine: wkhtmltopdf or chrome")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable name or path")

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

func parseServeFlags(args []string) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve")
	f.common.register(fs)
	fs.StringVar(&f.addr, "addr", "", "listen address (default "+defaultAddr+")")

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

func parseDoctorFlags(args []string) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor")
	f.common.register(fs)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")

	positional, err := parse(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}
