package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		paths       []string
		wantContain []string
		wantAbsent  string
	}{
		{
			name:        "suggests user config path",
			paths:       []string{"plotly.yaml", "/home/u/.config/go-plotly/plotly.yaml"},
			wantContain: []string{"--config", "or create /home/u/.config/go-plotly/plotly.yaml"},
		},
		{
			name:        "no user path",
			paths:       []string{"plotly.yaml"},
			wantContain: []string{"--config"},
			wantAbsent:  "or create",
		},
		{
			name:        "nil paths",
			paths:       nil,
			wantContain: []string{"hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.paths)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("ForConfigNotFound() = %q, want containing %q", got, want)
				}
			}
			if tt.wantAbsent != "" && strings.Contains(got, tt.wantAbsent) {
				t.Errorf("ForConfigNotFound() = %q, should not contain %q", got, tt.wantAbsent)
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		got         string
		wantContain string
	}{
		{name: "output directory", got: ForOutputDirectory(), wantContain: "writable"},
		{name: "missing source kind", got: ForMissingSourceKind(), wantContain: "csv or json"},
		{name: "chart parse", got: ForChartParse(), wantContain: "$js"},
		{name: "invalid formatter", got: ForInvalidFormatter(), wantContain: "identifiers"},
		{name: "asset path", got: ForAssetPath(), wantContain: "--asset-path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") {
				t.Errorf("hint %q lacks the standard prefix", tt.got)
			}
			if !strings.Contains(tt.got, tt.wantContain) {
				t.Errorf("hint %q should contain %q", tt.got, tt.wantContain)
			}
		})
	}
}

func TestForLocale(t *testing.T) {
	t.Parallel()

	if got := ForLocale([]string{"en", "pl"}); !strings.Contains(got, "bundled: en, pl") {
		t.Errorf("ForLocale() = %q, want bundled list", got)
	}
	if got := ForLocale(nil); !strings.Contains(got, "pl-PL") {
		t.Errorf("ForLocale(nil) = %q, want example tag", got)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
