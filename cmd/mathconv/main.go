// Command mathconv evaluates formulas from the command line.
//
// Usage:
//
//	mathconv [flags] formula [inputs...]
//	mathconv [flags] -name formula-name [inputs...]
//	mathconv [flags] -save formula-name formula
//	mathconv [flags] -list
//	mathconv [flags] -batch cases.yaml
//
// Inputs bind to x, y, z, Var3 ... Var9 in order. The literals null, true
// and false are taken as such, numbers are read with '.' as the decimal
// point and anything else is a string.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/randalmurphal/mathconv/pkg/mathconv"
	"github.com/randalmurphal/mathconv/pkg/mathconv/config"
	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitRuntime = 3
)

func main() {
	os.Exit(run(context.Background(), afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

// options holds parsed command-line flags.
type options struct {
	culture  string
	config   string
	library  string
	name     string
	save     string
	list     bool
	batch    string
	logLevel string
	noCache  bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("mathconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.culture, "culture", "", "culture for parsing and display, e.g. de-DE")
	fs.StringVar(&o.config, "config", "", "settings file (.yaml, .yml or .json)")
	fs.StringVar(&o.library, "library", "", "SQLite formula library")
	fs.StringVar(&o.name, "name", "", "evaluate the library formula with this name")
	fs.StringVar(&o.save, "save", "", "store the formula in the library under this name")
	fs.BoolVar(&o.list, "list", false, "list the formulas in the library")
	fs.StringVar(&o.batch, "batch", "", "evaluate the cases in a batch file and print a table")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&o.noCache, "no-cache", false, "compile formulas on every evaluation")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mathconv [flags] formula [inputs...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func run(ctx context.Context, fsys afero.Fs, args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	var (
		settings config.Settings
		batch    config.Batch
	)
	switch {
	case opts.batch != "":
		batch, err = config.LoadBatch(fsys, opts.batch)
		settings = batch.Settings
	case opts.config != "":
		settings, err = config.Load(fsys, opts.config)
	default:
		settings = config.Default()
	}
	if err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitUsage
	}
	if err := applyFlags(&settings, opts); err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitUsage
	}

	convOpts, err := mathconv.FromSettings(settings)
	if err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitRuntime
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: settings.Level()}))
	conv := mathconv.New(append(convOpts, mathconv.WithLogger(logger))...)
	defer conv.Close()

	switch {
	case opts.batch != "":
		return runBatch(ctx, conv, batch.Cases, stdout, stderr)
	case opts.list:
		return runList(conv, stdout, stderr)
	case opts.save != "":
		return runSave(conv, opts.save, rest, stderr)
	case opts.name != "":
		return runOne(ctx, conv, "", opts.name, rest, stdout, stderr)
	}

	if len(rest) == 0 {
		fmt.Fprintln(stderr, "usage: mathconv [flags] formula [inputs...]")
		return exitUsage
	}
	return runOne(ctx, conv, rest[0], "", rest[1:], stdout, stderr)
}

// applyFlags overrides loaded settings with explicit flags.
func applyFlags(s *config.Settings, o options) error {
	if o.culture != "" {
		s.Culture = o.culture
	}
	if o.library != "" {
		s.Library = o.library
	}
	if o.logLevel != "" {
		s.LogLevel = o.logLevel
	}
	if o.noCache {
		s.DisableCache = true
	}
	if (o.name != "" || o.save != "" || o.list) && s.Library == "" {
		return errors.New("-name, -save and -list need a library (-library or library in settings)")
	}
	return s.Validate()
}

func runOne(ctx context.Context, conv *mathconv.Converter, formula, name string, args []string, stdout, stderr io.Writer) int {
	inputs := parseInputs(args)

	var (
		v   value.Value
		err error
	)
	if name != "" {
		v, err = conv.ConvertNamed(ctx, name, inputs...)
	} else {
		v, err = conv.Convert(ctx, formula, inputs...)
	}
	if err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitFailed
	}
	fmt.Fprintln(stdout, value.Display(v, conv.Culture()))
	return exitOK
}

func runSave(conv *mathconv.Converter, name string, args []string, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: mathconv -library db -save name formula")
		return exitUsage
	}
	formula := args[0]
	if _, err := conv.Compile(formula); err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitFailed
	}
	if err := conv.Library().Save(name, formula); err != nil {
		fmt.Fprintln(stderr, "mathconv:", err)
		return exitRuntime
	}
	return exitOK
}

// parseInputs turns command-line literals into input values.
func parseInputs(args []string) []any {
	inputs := make([]any, len(args))
	for i, a := range args {
		inputs[i] = parseLiteral(a)
	}
	return inputs
}

func parseLiteral(s string) any {
	switch strings.ToLower(s) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	// The invariant culture would read ',' as a group separator.
	if strings.Contains(s, ",") {
		return s
	}
	if f, ok := culture.Invariant().ParseFloat(s); ok {
		return f
	}
	return s
}
