// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in ~/.config/go-plotly/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-plotly") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMissingSourceKind returns hints when sourceFile is set without sourceType.
func ForMissingSourceKind() string {
	return format("set sourceType to csv or json next to sourceFile")
}

// ForChartParse returns hints for malformed chart files.
func ForChartParse() string {
	return formatHints([]string{
		"a chart file is a YAML or JSON mapping",
		"known keys: id, sourceType, sourceFile, traces, layout, chartOptions, options, loadingAnimation, formatters",
		`inline code is written as {$js: "function (v) { ... }"}`,
	})
}

// ForInvalidFormatter returns hints for rejected formatter names.
func ForInvalidFormatter() string {
	return format("formatter names must be JavaScript identifiers other than traces, layout, chartOptions, data or Plotly")
}

// ForAssetPath returns hints for an unusable custom asset directory.
func ForAssetPath() string {
	return format("--asset-path must be a directory containing styles/ and/or templates/")
}

// ForLocale returns hints for unparseable locales.
func ForLocale(available []string) string {
	if len(available) == 0 {
		return format("use a BCP 47 tag such as en or pl-PL")
	}
	return format("use a BCP 47 tag; bundled: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
