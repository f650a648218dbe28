// Package plotly renders Plotly.js chart widgets for server-generated HTML.
//
// # Quick Start
//
// Create a widget, render a chart against a page, and write the page:
//
//	w, err := plotly.NewWidget()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page := w.NewPage(plotly.WithPageTitle("Sales"))
//	markup, err := w.Render(plotly.Chart{
//	    Traces: []plotly.M{
//	        {{"x", []int{1, 2, 3}}, {"y", []int{2, 1, 3}}, {"type", plotly.GraphBar}},
//	    },
//	    Layout: plotly.M{{"title", "Sales"}},
//	}, page)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = page.Render(os.Stdout, markup)
//
// Render returns the container element (with the animated loading indicator)
// and hands the initialization script and the asset descriptor to the
// Registrar. Page is the built-in Registrar; applications with their own
// layout system implement Registrar themselves.
//
// # Rendering Pipeline
//
// One Render call goes through these stages:
//
//  1. Validation (source kind, formatter names, container attributes)
//  2. Conversion of traces, layout and chart options to ordered value trees
//  3. Script composition (formatters, configuration, optional data fetch)
//  4. Container markup with the translated loading indicator
//  5. Registration of assets and script
//
// Any failure happens before step 5, so a failed Render leaves the
// Registrar untouched.
//
// # Code Values
//
// Values of type Code are emitted verbatim into the script, never quoted:
//
//	plotly.M{{"hoverformat", plotly.Code("fmtPercent")}}
//
// Chart.Formatters binds named code fragments before the configuration so
// that Code values can refer to them. Code is trusted input.
//
// # Remote Data
//
// Set SourceType and SourceFile to fetch data before plotting. The fetched
// rows are visible to code fragments as data:
//
//	plotly.Chart{
//	    SourceType: plotly.SourceCSV,
//	    SourceFile: "/data/sales.csv",
//	    Traces:     []plotly.M{{{"x", plotly.Code("data.map(function (r) { return r.month; })")}}},
//	}
//
// # Assets
//
// Describe returns the stylesheet and library script a chart needs. File
// names never carry the version; Asset.URL appends it as a ?v= query so
// caches are invalidated on upgrade. Stylesheet returns the built-in
// loading-indicator CSS for publishing under the style base.
//
// # Markdown Documents
//
// MarkdownConverter renders Markdown pages where ```plotly fenced blocks hold
// chart files (YAML, see ParseChart):
//
//	conv, err := plotly.NewMarkdownConverter(w)
//	doc, err := conv.Convert(ctx, markdown)
//
// # Localization
//
// The loading text is translated through a Translator. The built-in Catalog
// covers ten languages; WithTranslator plugs in any other source.
//
// # Error Handling
//
// Errors can be checked using errors.Is:
//
//	if errors.Is(err, plotly.ErrMissingSourceKind) {
//	    // sourceFile set without sourceType
//	}
package plotly
