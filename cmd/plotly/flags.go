package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// widgetFlags override the widget section of the config file.
type widgetFlags struct {
	locale     string
	styleBase  string
	scriptBase string
	assetPath  string
	noLoading  bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	widget widgetFlags
	output string
	title  string
}

// pageFlags holds all flags for the page command.
type pageFlags struct {
	common    commonFlags
	widget    widgetFlags
	output    string
	workers   int
	highlight string
}

// assetsFlags holds all flags for the assets command.
type assetsFlags struct {
	common    commonFlags
	output    string
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addWidgetFlags adds widget flags to a FlagSet.
func addWidgetFlags(fs *flag.FlagSet, f *widgetFlags) {
	fs.StringVar(&f.locale, "locale", "", "locale of the loading text, e.g. pl or pt-BR")
	fs.StringVar(&f.styleBase, "style-base", "", "URL prefix of css/plotly.css")
	fs.StringVar(&f.scriptBase, "script-base", "", "URL prefix of js/plotly.min.js")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (styles/, templates/)")
	fs.BoolVar(&f.noLoading, "no-loading", false, "disable the loading indicator")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlags parses args, wrapping parse errors as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", `output HTML file ("-" = stdout)`)
	fs.StringVar(&f.title, "title", "", "page title (default: input file name)")
	addCommonFlags(fs, &f.common)
	addWidgetFlags(fs, &f.widget)

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parsePageFlags parses page command flags and returns positional args.
func parsePageFlags(args []string, stderr io.Writer) (*pageFlags, []string, error) {
	f := &pageFlags{}
	fs := newFlagSet("page", printPageUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting style (default: github)")
	addCommonFlags(fs, &f.common)
	addWidgetFlags(fs, &f.widget)

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseAssetsFlags parses assets command flags and returns positional args.
func parseAssetsFlags(args []string, stderr io.Writer) (*assetsFlags, []string, error) {
	f := &assetsFlags{}
	fs := newFlagSet("assets", printAssetsUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", ".", "directory receiving css/plotly.css")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (styles/)")
	addCommonFlags(fs, &f.common)

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}
