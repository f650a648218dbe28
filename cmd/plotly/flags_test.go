package main

// Notes:
// - Flag parsing is tested through the per-command parsers; pflag itself is
//   not retested. Parse errors must wrap ErrUsage, help must stay ErrHelp.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseRenderFlags
// ---------------------------------------------------------------------------

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	f, positional, err := parseRenderFlags([]string{
		"chart.yaml",
		"-o", "out.html",
		"--title", "Sales",
		"-c", "work",
		"-v",
		"--locale", "pl",
		"--style-base", "/s",
		"--script-base", "/j",
		"--asset-path", "./assets",
		"--no-loading",
	}, &stderr)
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}

	if len(positional) != 1 || positional[0] != "chart.yaml" {
		t.Errorf("positional = %v", positional)
	}
	wantWidget := widgetFlags{locale: "pl", styleBase: "/s", scriptBase: "/j", assetPath: "./assets", noLoading: true}
	if f.widget != wantWidget {
		t.Errorf("widget = %+v, want %+v", f.widget, wantWidget)
	}
	wantCommon := commonFlags{config: "work", verbose: true}
	if f.common != wantCommon {
		t.Errorf("common = %+v, want %+v", f.common, wantCommon)
	}
	if f.output != "out.html" || f.title != "Sales" {
		t.Errorf("output = %q, title = %q", f.output, f.title)
	}
}

func TestParsePageFlags(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	f, positional, err := parsePageFlags([]string{"docs", "-w", "4", "--highlight", "monokai", "-q"}, &stderr)
	if err != nil {
		t.Fatalf("parsePageFlags() error = %v", err)
	}
	if len(positional) != 1 || positional[0] != "docs" {
		t.Errorf("positional = %v", positional)
	}
	if f.workers != 4 || f.highlight != "monokai" || !f.common.quiet {
		t.Errorf("flags = %+v", f)
	}
}

func TestParseAssetsFlags_Defaults(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	f, positional, err := parseAssetsFlags(nil, &stderr)
	if err != nil {
		t.Fatalf("parseAssetsFlags() error = %v", err)
	}
	if len(positional) != 0 || f.output != "." || f.assetPath != "" {
		t.Errorf("flags = %+v, positional = %v", f, positional)
	}
}

// ---------------------------------------------------------------------------
// TestParseFlags_Errors
// ---------------------------------------------------------------------------

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		parse      func([]string, *bytes.Buffer) error
		args       []string
		wantErr    error
		wantStderr string
	}{
		{
			name:    "render unknown flag",
			parse:   func(a []string, w *bytes.Buffer) error { _, _, err := parseRenderFlags(a, w); return err },
			args:    []string{"--unknown"},
			wantErr: ErrUsage,
		},
		{
			name:    "page bad worker value",
			parse:   func(a []string, w *bytes.Buffer) error { _, _, err := parsePageFlags(a, w); return err },
			args:    []string{"-w", "many"},
			wantErr: ErrUsage,
		},
		{
			name:    "assets widget flag rejected",
			parse:   func(a []string, w *bytes.Buffer) error { _, _, err := parseAssetsFlags(a, w); return err },
			args:    []string{"--locale", "pl"},
			wantErr: ErrUsage,
		},
		{
			name:       "render help",
			parse:      func(a []string, w *bytes.Buffer) error { _, _, err := parseRenderFlags(a, w); return err },
			args:       []string{"-h"},
			wantErr:    flag.ErrHelp,
			wantStderr: "Usage: plotly render",
		},
		{
			name:       "assets help",
			parse:      func(a []string, w *bytes.Buffer) error { _, _, err := parseAssetsFlags(a, w); return err },
			args:       []string{"--help"},
			wantErr:    flag.ErrHelp,
			wantStderr: "Usage: plotly assets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			err := tt.parse(tt.args, &stderr)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if errors.Is(err, flag.ErrHelp) && errors.Is(err, ErrUsage) {
				t.Error("help must not be reported as a usage error")
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}
