package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/lifetime"
	"github.com/wippyai/droptrace/resource"
	"github.com/wippyai/droptrace/scenario"
	"github.com/wippyai/droptrace/trace"
)

type options struct {
	run         string
	format      string
	verbose     bool
	interactive bool
	list        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.run, "run", "", "Scenarios to run, comma-separated (default: all, in order A-D)")
	flag.StringVar(&opts.format, "format", "text", "Trace format: text or yaml")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging to stderr")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode: step through the trace one event at a time")
	flag.BoolVar(&opts.list, "list", false, "List scenarios and exit")
	flag.Parse()

	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, stdout, stderr io.Writer) error {
	scs, err := scenario.Lookup(strings.Split(opts.run, ",")...)
	if err != nil {
		return fmt.Errorf("select scenarios: %w", err)
	}

	if opts.list {
		for _, sc := range scs {
			fmt.Fprintf(stdout, "%s  %s\n", sc.Name, sc.Title)
		}
		return nil
	}

	if opts.format != "text" && opts.format != "yaml" {
		return errors.InvalidInput(errors.PhaseCLI, fmt.Sprintf("unknown format %q (want text or yaml)", opts.format))
	}

	log := zap.NewNop()
	if opts.verbose {
		log = newLogger(stderr)
		defer log.Sync()
		lifetime.SetLogger(log.Named("lifetime"))
		resource.SetLogger(log.Named("resource"))
	}

	if opts.interactive {
		return runInteractive(scs, log)
	}

	var rec *trace.Recorder
	if opts.format == "text" {
		rec = trace.NewRecorder(trace.WithWriter(stdout), trace.WithRenderer(rendererFor(stdout)))
	} else {
		rec = trace.NewRecorder()
	}

	if err := scenario.NewRunner(rec, log).Run(scs); err != nil {
		return fmt.Errorf("run scenarios: %w", err)
	}

	if opts.format == "yaml" {
		return trace.EncodeYAML(stdout, rec.Entries())
	}
	return nil
}

// newLogger builds a development-style console logger on w, so debug output
// never mixes with the trace on stdout.
func newLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development())
}
