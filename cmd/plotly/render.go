package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-plotly"
	"github.com/alnah/go-plotly/internal/fileutil"
)

// stdioPath selects standard input or output.
const stdioPath = "-"

// runRenderCommand renders one chart file as a standalone page.
func runRenderCommand(ctx context.Context, args []string, deps *Dependencies) error {
	flags, positional, err := parseRenderFlags(args, deps.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: render needs a chart file", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes one chart file, got %d", ErrUsage, len(positional))
	}
	return runRender(ctx, positional[0], flags, deps)
}

func runRender(ctx context.Context, inputPath string, flags *renderFlags, deps *Dependencies) error {
	start := deps.Now()
	logger := newLogger(deps.Stderr, flags.common)

	cfg, err := loadConfig(flags.common)
	if err != nil {
		return err
	}
	if err := mergeWidgetFlags(flags.widget, cfg); err != nil {
		return err
	}

	w, err := newWidget(cfg, logger)
	if err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}
	chart, err := plotly.ParseChart(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	title := flags.title
	if title == "" {
		title = pageTitle(cfg.Page.Title, inputPath)
	}
	page := w.NewPage(plotly.WithPageTitle(title))

	markup, err := w.Render(chart, page)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	var out bytes.Buffer
	if err := page.Render(&out, markup); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := resolveRenderOutput(inputPath, flags.output)
	if err := writeOutput(outputPath, out.Bytes(), deps.Stdout); err != nil {
		return err
	}

	if outputPath != stdioPath && !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", inputPath, outputPath, deps.Now().Sub(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s\n", outputPath)
		}
	}
	logger.Debug("page written", slog.String("output", outputPath), slog.Any("charts", page.ContainerIDs()))
	return nil
}

// resolveRenderOutput returns the output path of the render command.
func resolveRenderOutput(inputPath, output string) string {
	switch {
	case output != "":
		return output
	case inputPath == stdioPath:
		return stdioPath
	default:
		return fileutil.ReplaceExt(inputPath, ".html")
	}
}

// readInput reads a file, or standard input for "-".
func readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdioPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided input path
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return data, nil
}

// writeOutput writes data atomically to path, or to stdout for "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdioPath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
