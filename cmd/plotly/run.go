package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-plotly"
	"github.com/alnah/go-plotly/internal/config"
	"github.com/alnah/go-plotly/internal/hints"
)

// Command names.
const (
	cmdRender  = "render"
	cmdPage    = "page"
	cmdAssets  = "assets"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input file")
	ErrWriteOutput    = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runMain dispatches args[1:] and returns the process exit code.
func runMain(args []string, deps *Dependencies) int {
	if len(args) < 2 {
		printUsage(deps.Stderr)
		return ExitUsage
	}

	command, rest := args[1], args[2:]
	switch command {
	case cmdHelp, "-h", "--help":
		return runHelp(rest, deps)
	case cmdVersion, "--version":
		fmt.Fprintf(deps.Stdout, "plotly %s (Plotly.js %s)\n", Version, plotly.LibraryVersion)
		return ExitSuccess
	}

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	var err error
	switch command {
	case cmdRender:
		err = runRenderCommand(ctx, rest, deps)
	case cmdPage:
		err = runPageCommand(ctx, rest, deps)
	case cmdAssets:
		err = runAssetsCommand(rest, deps)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v%s\n", err, hintFor(err))
		if errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrUsage) {
			fmt.Fprintln(deps.Stderr)
			printUsage(deps.Stderr)
		}
	}
	return exitCodeFor(err)
}

// hintFor returns an actionable hint for well-known failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigCandidates())
	case errors.Is(err, config.ErrInvalidField) && strings.Contains(err.Error(), "locale"):
		return hints.ForLocale(plotly.NewCatalog().Languages())
	case errors.Is(err, plotly.ErrMissingSourceKind):
		return hints.ForMissingSourceKind()
	case errors.Is(err, plotly.ErrChartParse):
		return hints.ForChartParse()
	case errors.Is(err, plotly.ErrInvalidFormatterName):
		return hints.ForInvalidFormatter()
	case errors.Is(err, plotly.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// userConfigCandidates lists where a config named "plotly" would be found.
func userConfigCandidates() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-plotly", "plotly.yaml")}
}

// newLogger builds the CLI logger: errors only with quiet, debug with verbose.
func newLogger(w io.Writer, flags commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota and returns the
// resulting value. maxprocs.Set only fails on an invalid GOMAXPROCS
// environment variable, in which case the runtime default stays in place.
func setMaxProcs(logger *slog.Logger) int {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		logger.Debug("maxprocs unavailable", slog.Any("error", err))
		undo()
	}
	return runtime.GOMAXPROCS(0)
}

// loadConfig loads the config file named by flags, or the defaults.
func loadConfig(flags commonFlags) (*config.Config, error) {
	if flags.config == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeWidgetFlags merges CLI flags into config. CLI values override config values.
func mergeWidgetFlags(f widgetFlags, cfg *config.Config) error {
	if f.locale != "" {
		cfg.Locale = f.locale
	}
	if f.styleBase != "" {
		cfg.Assets.StyleBase = f.styleBase
	}
	if f.scriptBase != "" {
		cfg.Assets.ScriptBase = f.scriptBase
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.noLoading {
		disabled := false
		cfg.Widget.LoadingAnimation = &disabled
	}
	return cfg.Validate()
}

// newWidget creates the widget described by cfg.
func newWidget(cfg *config.Config, logger *slog.Logger) (*plotly.Widget, error) {
	opts := []plotly.Option{
		plotly.WithLogger(logger),
		plotly.WithLocale(cfg.Locale),
		plotly.WithStyleBase(cfg.Assets.StyleBase),
		plotly.WithScriptBase(cfg.Assets.ScriptBase),
		plotly.WithAssetPath(cfg.Assets.BasePath),
		plotly.WithLoadingAnimation(cfg.Widget.ShowLoading()),
	}
	if cfg.Page.IDPrefix != "" {
		opts = append(opts, plotly.WithIDPrefix(cfg.Page.IDPrefix))
	}
	return plotly.NewWidget(opts...)
}

// pageTitle returns the configured title, or the input name without extension.
func pageTitle(configured, inputPath string) string {
	if configured != "" {
		return configured
	}
	if inputPath == "" || inputPath == "-" {
		return plotly.DefaultPageTitle
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
