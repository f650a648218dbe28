package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-plotly/internal/jsvalue"
)

// Source kinds understood by the charting library's fetch helpers.
const (
	SourceCSV  = "csv"
	SourceJSON = "json"
)

// LoadingWrapperClass is the class of the loading indicator's root element.
// The continuation added after plotting removes direct children carrying it.
const LoadingWrapperClass = "plotlybars-wrapper"

// Binding names used inside the composed function.
const (
	tracesBinding       = "traces"
	layoutBinding       = "layout"
	chartOptionsBinding = "chartOptions"
	dataBinding         = "data"
)

// Config holds the already-normalized inputs of one composition.
// A nil Value is emitted as an empty array (traces) or empty object.
type Config struct {
	Traces       jsvalue.Value
	Layout       jsvalue.Value
	ChartOptions jsvalue.Value
	Source       *Source
	Formatters   []Formatter
}

// Source describes remote data fetched before plotting.
type Source struct {
	Kind     string // SourceCSV or SourceJSON
	Location string
}

// Formatter binds a code fragment to a name visible to traces and layout.
type Formatter struct {
	Name string
	Code jsvalue.Code
}

// Script is the composed initialization script of one render.
type Script struct {
	Body string
}

// identifierPattern matches plain ASCII JavaScript identifiers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// reservedNames cannot be used as formatter names: JavaScript reserved words
// and the bindings the composed function declares itself.
var reservedNames = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"implements": true, "import": true, "in": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "null": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"static": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "await": true,
	"arguments": true, "eval": true, "undefined": true, "Plotly": true,
	tracesBinding: true, layoutBinding: true, chartOptionsBinding: true,
	dataBinding: true,
}

// ValidateFormatterName reports whether name can be bound by the composer.
func ValidateFormatterName(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q is not a JavaScript identifier", ErrInvalidFormatterName, name)
	}
	if reservedNames[name] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidFormatterName, name)
	}
	return nil
}

// Compose builds the initialization script for the container containerID.
// When loadingBars is set, the loading indicator inside the container is
// removed once the plot call resolves.
func Compose(cfg Config, containerID string, loadingBars bool) (Script, error) {
	if containerID == "" {
		return Script{}, ErrEmptyContainerID
	}
	if cfg.Source != nil && cfg.Source.Kind != SourceCSV && cfg.Source.Kind != SourceJSON {
		return Script{}, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidSourceKind, cfg.Source.Kind, SourceCSV, SourceJSON)
	}

	seen := make(map[string]bool, len(cfg.Formatters))
	for _, f := range cfg.Formatters {
		if err := ValidateFormatterName(f.Name); err != nil {
			return Script{}, err
		}
		if seen[f.Name] {
			return Script{}, fmt.Errorf("%w: %q is bound twice", ErrInvalidFormatterName, f.Name)
		}
		seen[f.Name] = true
	}

	traces, err := serializeOr(cfg.Traces, jsvalue.Array{}, tracesBinding)
	if err != nil {
		return Script{}, err
	}
	layout, err := serializeOr(cfg.Layout, jsvalue.Object{}, layoutBinding)
	if err != nil {
		return Script{}, err
	}
	chartOptions, err := serializeOr(cfg.ChartOptions, jsvalue.Object{}, chartOptionsBinding)
	if err != nil {
		return Script{}, err
	}

	var b strings.Builder
	b.WriteString("(function () {\n")

	for _, f := range cfg.Formatters {
		fmt.Fprintf(&b, "var %s = %s;\n", f.Name, f.Code)
	}

	plot := plotStatement(containerID, traces, layout, chartOptions, loadingBars)

	if cfg.Source == nil {
		b.WriteString(plot)
	} else {
		fmt.Fprintf(&b, "Plotly.d3.%s(%s, function (%s) {\n", cfg.Source.Kind, jsvalue.Quote(cfg.Source.Location), dataBinding)
		b.WriteString(plot)
		b.WriteString("});\n")
	}

	b.WriteString("})();\n")
	return Script{Body: b.String()}, nil
}

// plotStatement binds the serialized configuration and calls the plot entry point.
func plotStatement(containerID, traces, layout, chartOptions string, loadingBars bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "var %s = %s;\n", tracesBinding, traces)
	fmt.Fprintf(&b, "var %s = %s;\n", layoutBinding, layout)
	fmt.Fprintf(&b, "var %s = %s;\n", chartOptionsBinding, chartOptions)

	container := "document.getElementById(" + jsvalue.Quote(containerID) + ")"
	fmt.Fprintf(&b, "Plotly.plot(%s, %s, %s, %s)", container, tracesBinding, layoutBinding, chartOptionsBinding)
	if loadingBars {
		b.WriteString(removeLoadingContinuation(container))
	}
	b.WriteString(";\n")
	return b.String()
}

// removeLoadingContinuation removes the container's direct children that form
// the loading indicator. Children are matched by class rather than by a CSS
// selector built from the id, so no selector escaping is involved.
func removeLoadingContinuation(container string) string {
	return ".then(function () {\n" +
		"\tvar container = " + container + ";\n" +
		"\tArray.prototype.slice.call(container.children).forEach(function (child) {\n" +
		"\t\tif (child.classList.contains(" + jsvalue.Quote(LoadingWrapperClass) + ")) {\n" +
		"\t\t\tcontainer.removeChild(child);\n" +
		"\t\t}\n" +
		"\t});\n" +
		"})"
}

func serializeOr(v, fallback jsvalue.Value, name string) (string, error) {
	if v == nil {
		v = fallback
	}
	out, err := jsvalue.Serialize(v)
	if err != nil {
		return "", fmt.Errorf("serializing %s: %w", name, err)
	}
	return out, nil
}
