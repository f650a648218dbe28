package main

// Notes:
// - convertBatch: converters are mocked so tests cover pool behavior (order,
//   cancellation, per-file failures) without Markdown rendering.
// - discoverFiles/resolveOutputPath: directory layout is preserved under the
//   output directory; paths are built with filepath for portability.

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alnah/go-plotly"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

type mockConverter struct {
	charts int
	err    error
	calls  *atomic.Int32
}

func (m *mockConverter) Convert(ctx context.Context, markdown []byte) (*plotly.Document, error) {
	if m.calls != nil {
		m.calls.Add(1)
	}
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]string, m.charts)
	for i := range ids {
		ids[i] = "c"
	}
	return &plotly.Document{HTML: "<p>" + string(markdown) + "</p>", ChartIDs: ids}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"auto", 0, false},
		{"one", 1, false},
		{"maximum", MaxWorkers, false},
		{"negative", -1, true},
		{"above maximum", MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveWorkers - Pool sizing
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flag  int
		files int
		want  int
	}{
		{"explicit below files", 2, 10, 2},
		{"explicit above files", 8, 3, 3},
		{"single file", 4, 1, 1},
		{"no files still one worker", 4, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveWorkers(tt.flag, tt.files, discardLogger()); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d) = %d, want %d", tt.flag, tt.files, got, tt.want)
			}
		})
	}
}

func TestResolveWorkers_Auto(t *testing.T) {
	t.Parallel()

	got := resolveWorkers(0, 1000, discardLogger())
	if got < 1 || got > MaxWorkers {
		t.Errorf("resolveWorkers(0, 1000) = %d, want within [1, %d]", got, MaxWorkers)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output layout
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{
			name:  "next to input",
			input: filepath.Join("docs", "intro.md"),
			want:  filepath.Join("docs", "intro.html"),
		},
		{
			name:      "explicit html file",
			input:     filepath.Join("docs", "intro.md"),
			outputDir: filepath.Join("out", "page.HTML"),
			want:      filepath.Join("out", "page.HTML"),
		},
		{
			name:      "flat output directory",
			input:     filepath.Join("docs", "intro.markdown"),
			outputDir: "site",
			want:      filepath.Join("site", "intro.html"),
		},
		{
			name:      "nested layout preserved",
			input:     filepath.Join("docs", "guide", "deep.md"),
			outputDir: "site",
			baseDir:   "docs",
			want:      filepath.Join("site", "guide", "deep.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":          "a",
		"b.markdown":    "b",
		"c.txt":         "c",
		"sub/d.MD":      "d",
		"sub/deep/e.md": "e",
	})
	out := filepath.Join(dir, "out")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	got := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(out, f.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		got[i] = filepath.ToSlash(rel)
	}
	sort.Strings(got)

	want := []string{"a.html", "b.html", "sub/d.html", "sub/deep/e.html"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("outputs = %v, want %v", got, want)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"notes.md": "x", "notes.txt": "x"})

	files, err := discoverFiles(filepath.Join(dir, "notes.md"), "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "notes.html") {
		t.Errorf("files = %+v", files)
	}

	_, err = discoverFiles(filepath.Join(dir, "notes.txt"), "")
	if !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("error = %v, want ErrInvalidExtension", err)
	}

	_, err = discoverFiles(filepath.Join(dir, "missing.md"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"one.md":   "one",
		"two.md":   "two",
		"three.md": "three",
	})
	files := []FileToConvert{
		{InputPath: filepath.Join(dir, "one.md"), OutputPath: filepath.Join(dir, "out", "one.html")},
		{InputPath: filepath.Join(dir, "two.md"), OutputPath: filepath.Join(dir, "out", "two.html")},
		{InputPath: filepath.Join(dir, "three.md"), OutputPath: filepath.Join(dir, "out", "three.html")},
	}

	var calls atomic.Int32
	results := convertBatch(context.Background(), files, 2, func(f FileToConvert) (PageConverter, error) {
		return &mockConverter{charts: 2, calls: &calls}, nil
	})

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected error %v", r.InputPath, r.Err)
		}
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d] = %s, order not preserved", i, r.InputPath)
		}
		if r.ChartCount != 2 {
			t.Errorf("ChartCount = %d, want 2", r.ChartCount)
		}
	}
	if calls.Load() != 3 {
		t.Errorf("converter called %d times, want 3", calls.Load())
	}
	if got := readFile(t, filepath.Join(dir, "out", "two.html")); got != "<p>two</p>" {
		t.Errorf("two.html = %q", got)
	}
}

func TestConvertBatch_Failures(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"ok.md": "ok", "bad.md": "bad"})
	errConvert := errors.New("conversion exploded")
	errFactory := errors.New("factory failed")

	files := []FileToConvert{
		{InputPath: filepath.Join(dir, "ok.md"), OutputPath: filepath.Join(dir, "ok.html")},
		{InputPath: filepath.Join(dir, "bad.md"), OutputPath: filepath.Join(dir, "bad.html")},
		{InputPath: filepath.Join(dir, "missing.md"), OutputPath: filepath.Join(dir, "missing.html")},
		{InputPath: filepath.Join(dir, "ok.md"), OutputPath: filepath.Join(dir, "factory.html")},
	}

	results := convertBatch(context.Background(), files, 4, func(f FileToConvert) (PageConverter, error) {
		switch filepath.Base(f.OutputPath) {
		case "bad.html":
			return &mockConverter{err: errConvert}, nil
		case "factory.html":
			return nil, errFactory
		}
		return &mockConverter{}, nil
	})

	tests := []struct {
		idx     int
		wantErr error
	}{
		{0, nil},
		{1, errConvert},
		{2, ErrReadInput},
		{3, errFactory},
	}
	for _, tt := range tests {
		got := results[tt.idx].Err
		if tt.wantErr == nil {
			if got != nil {
				t.Errorf("results[%d].Err = %v, want nil", tt.idx, got)
			}
			continue
		}
		if !errors.Is(got, tt.wantErr) {
			t.Errorf("results[%d].Err = %v, want %v", tt.idx, got, tt.wantErr)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.html")); err == nil {
		t.Error("failed conversions must not write output")
	}
}

func TestConvertBatch_Canceled(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "a", "b.md": "b"})
	files := []FileToConvert{
		{InputPath: filepath.Join(dir, "a.md"), OutputPath: filepath.Join(dir, "a.html")},
		{InputPath: filepath.Join(dir, "b.md"), OutputPath: filepath.Join(dir, "b.html")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := convertBatch(ctx, files, 1, func(FileToConvert) (PageConverter, error) {
		return &mockConverter{calls: &calls}, nil
	})

	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("converter called %d times after cancellation", calls.Load())
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), nil, 4, nil); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults - Summary output
// ---------------------------------------------------------------------------

func TestCountResults(t *testing.T) {
	t.Parallel()

	got := countResults([]ConversionResult{
		{ChartCount: 2},
		{ChartCount: 1},
		{ChartCount: 5, Err: errors.New("x")},
	})
	want := ResultSummary{Succeeded: 2, Failed: 1, Charts: 3}
	if got != want {
		t.Errorf("countResults() = %+v, want %+v", got, want)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.html", ChartCount: 1},
		{InputPath: "b.md", Err: plotly.ErrMissingSourceKind},
	}

	tests := []struct {
		name        string
		flags       commonFlags
		wantStdout  []string
		avoidStdout string
	}{
		{"default", commonFlags{}, []string{"Created a.html", "1 succeeded, 1 failed"}, ""},
		{"verbose", commonFlags{verbose: true}, []string{"a.md -> a.html (1 charts"}, ""},
		{"quiet", commonFlags{quiet: true}, nil, "a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, stdout, stderr := testDeps()
			if failed := printResults(results, tt.flags, deps); failed != 1 {
				t.Errorf("printResults() = %d, want 1", failed)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			if tt.avoidStdout != "" && strings.Contains(stdout.String(), tt.avoidStdout) {
				t.Errorf("stdout should not contain %q:\n%s", tt.avoidStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), "FAILED b.md") || !strings.Contains(stderr.String(), "hint: set sourceType") {
				t.Errorf("stderr = %s", stderr.String())
			}
		})
	}
}
