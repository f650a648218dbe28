package plotly

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-plotly/internal/jsvalue"
	"github.com/alnah/go-plotly/internal/script"
)

// M is an ordered mapping used for traces, layout, chart options and HTML
// attributes. Keys must be unique per level and are emitted in slice order.
//
//	plotly.M{{"x", []int{1, 2}}, {"y", []int{3, 4}}, {"type", plotly.GraphScatter}}
type M = jsvalue.Map

// KV is one entry of an M.
type KV = jsvalue.Pair

// Code is script text emitted verbatim into the generated script, never
// quoted or escaped. The caller is responsible for its syntax and trust.
type Code = jsvalue.Code

// SourceType selects how remote chart data is fetched.
type SourceType string

// Source types understood by the charting library.
const (
	SourceCSV  SourceType = script.SourceCSV
	SourceJSON SourceType = script.SourceJSON
)

// GraphType is a trace type of the charting library.
type GraphType string

// Graph types.
const (
	GraphArea               GraphType = "area"
	GraphBar                GraphType = "bar"
	GraphBox                GraphType = "box"
	GraphChoropleth         GraphType = "choropleth"
	GraphContour            GraphType = "contour"
	GraphHeatmap            GraphType = "heatmap"
	GraphHistogram          GraphType = "histogram"
	GraphHistogram2D        GraphType = "histogram2d"
	GraphHistogram2DContour GraphType = "histogram2dcontour"
	GraphMesh3D             GraphType = "mesh3d"
	GraphPie                GraphType = "pie"
	GraphScatter            GraphType = "scatter"
	GraphScatter3D          GraphType = "scatter3d"
	GraphScatterGeo         GraphType = "scattergeo"
	GraphScatterGL          GraphType = "scattergl"
	GraphSurface            GraphType = "surface"
)

// BarMode is a layout barmode value.
type BarMode string

// Bar modes.
const (
	BarModeStack    BarMode = "stack"
	BarModeOverlay  BarMode = "overlay"
	BarModeRelative BarMode = "relative"
	BarModeGroup    BarMode = "group"
	BarModeOffset   BarMode = "offset"
)

// Formatter binds a code fragment to a name that traces and layout code can
// call. Formatters are bound in slice order, before the chart configuration.
type Formatter struct {
	Name string
	Code Code
}

// Chart is the configuration of one chart widget.
type Chart struct {
	// ID is the container element id. Empty means generated by the registrar.
	ID string

	// SourceType and SourceFile fetch remote data before plotting. The
	// fetched rows are visible to code fragments as the identifier data.
	SourceType SourceType
	SourceFile string

	Traces       []M
	Layout       M
	ChartOptions M

	// Options holds HTML attributes of the container element.
	Options M

	// HideLoading disables the animated loading indicator for this chart.
	HideLoading bool

	Formatters []Formatter
}

// attributeNamePattern accepts HTML attribute names without quoting concerns.
var attributeNamePattern = regexp.MustCompile(`^[A-Za-z_:][A-Za-z0-9_:.-]*$`)

// Validate checks the chart without rendering anything. Render calls it first.
func (c *Chart) Validate() error {
	if c.SourceFile != "" && c.SourceType == "" {
		return ErrMissingSourceKind
	}
	if c.SourceType != "" && c.SourceType != SourceCSV && c.SourceType != SourceJSON {
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidSourceKind, c.SourceType, SourceCSV, SourceJSON)
	}
	if c.ID != "" && strings.ContainsAny(c.ID, " \t\r\n\f") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidContainerID, c.ID)
	}

	seen := make(map[string]bool, len(c.Formatters))
	for _, f := range c.Formatters {
		if err := script.ValidateFormatterName(f.Name); err != nil {
			return convertError(err)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q is bound twice", ErrInvalidFormatterName, f.Name)
		}
		seen[f.Name] = true
	}

	return validateAttributes(c.Options)
}

// validateAttributes checks attribute names, including the keys of nested
// data-*, aria-* and style mappings. Nested values are normalized first so
// every map shape is checked the way renderAttributes will expand it.
func validateAttributes(attrs M) error {
	seen := make(map[string]bool, len(attrs))
	for _, kv := range attrs {
		if !attributeNamePattern.MatchString(kv.Key) {
			return fmt.Errorf("%w: name %q", ErrInvalidAttribute, kv.Key)
		}
		if seen[kv.Key] {
			return fmt.Errorf("%w: %q in options", ErrDuplicateKey, kv.Key)
		}
		seen[kv.Key] = true

		val, err := jsvalue.From(kv.Value)
		if err != nil {
			return fmt.Errorf("options: %w", convertError(err))
		}
		nested, ok := val.(jsvalue.Object)
		if !ok {
			continue
		}

		var prefix string
		switch kv.Key {
		case "data", "aria":
			prefix = kv.Key + "-"
		case "style":
			prefix = "style:"
		default:
			return fmt.Errorf("%w: %q cannot hold a mapping", ErrInvalidAttribute, kv.Key)
		}
		for _, m := range nested {
			if !attributeNamePattern.MatchString(prefix + m.Key) {
				return fmt.Errorf("%w: name %q", ErrInvalidAttribute, prefix+m.Key)
			}
		}
	}
	return nil
}

// source returns the fetch description, or nil when no file is configured.
func (c *Chart) source() *script.Source {
	if c.SourceFile == "" {
		return nil
	}
	return &script.Source{Kind: string(c.SourceType), Location: c.SourceFile}
}

// formatters converts to the composer's representation.
func (c *Chart) formatters() []script.Formatter {
	out := make([]script.Formatter, len(c.Formatters))
	for i, f := range c.Formatters {
		out[i] = script.Formatter{Name: f.Name, Code: f.Code}
	}
	return out
}
