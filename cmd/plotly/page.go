package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-plotly"
	"github.com/alnah/go-plotly/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// MaxWorkers caps the page command's worker pool.
const MaxWorkers = 32

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	ChartCount int
	Err        error
	Duration   time.Duration
}

// PageConverter is the part of plotly.MarkdownConverter used by the batch.
type PageConverter interface {
	Convert(ctx context.Context, markdown []byte) (*plotly.Document, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*plotly.MarkdownConverter)(nil)

// runPageCommand converts Markdown files to HTML pages.
func runPageCommand(ctx context.Context, args []string, deps *Dependencies) error {
	flags, positional, err := parsePageFlags(args, deps.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: page needs a Markdown file or directory", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: page takes one input, got %d", ErrUsage, len(positional))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

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

	files, err := discoverFiles(positional[0], flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no Markdown files found in %s", ErrNoInput, positional[0])
	}

	workers := resolveWorkers(flags.workers, len(files), logger)
	logger.Debug("converting", slog.Int("files", len(files)), slog.Int("workers", workers))

	results := convertBatch(ctx, files, workers, func(f FileToConvert) (PageConverter, error) {
		opts := []plotly.MarkdownOption{
			plotly.WithPageOptions(plotly.WithPageTitle(pageTitle(cfg.Page.Title, f.InputPath))),
		}
		if flags.highlight != "" {
			opts = append(opts, plotly.WithHighlightStyle(flags.highlight))
		}
		return plotly.NewMarkdownConverter(w, opts...)
	})

	failed := printResults(results, flags.common, deps)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// resolveWorkers returns the pool size: the flag when set, GOMAXPROCS
// otherwise, never more than there are files.
func resolveWorkers(flagValue, files int, logger *slog.Logger) int {
	n := flagValue
	if n == 0 {
		n = min(setMaxProcs(logger), MaxWorkers)
	}
	return max(1, min(n, files))
}

// discoverFiles finds all Markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// resolveOutputPath determines the HTML output path for a Markdown file.
// A directory input keeps its layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), ".html")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}
	if strings.HasSuffix(strings.ToLower(outputDir), ".html") {
		return outputDir
	}
	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}
	return filepath.Join(outputDir, base)
}

// convertBatch processes files concurrently with a bounded worker pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, files []FileToConvert, workers int, newConverter func(FileToConvert) (PageConverter, error)) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(files)))

	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = convertFile(ctx, files[idx], newConverter)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts a single file and returns the result.
func convertFile(ctx context.Context, f FileToConvert, newConverter func(FileToConvert) (PageConverter, error)) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadInput, err))
	}

	conv, err := newConverter(f)
	if err != nil {
		return finish(err)
	}
	doc, err := conv.Convert(ctx, content)
	if err != nil {
		return finish(err)
	}
	result.ChartCount = len(doc.ChartIDs)

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(doc.HTML), filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %s: %v", ErrWriteOutput, f.OutputPath, err))
	}
	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Charts    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Charts += r.ChartCount
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, flags commonFlags, deps *Dependencies) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if flags.quiet {
			continue
		}
		if flags.verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%d charts, %v)\n", r.InputPath, r.OutputPath, r.ChartCount, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
