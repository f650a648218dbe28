package plotly

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ChartLanguage is the info string of fenced code blocks rendered as charts.
const ChartLanguage = "plotly"

// DefaultHighlightStyle is the chroma style of highlighted code blocks.
const DefaultHighlightStyle = "github"

// Document is the result of a Markdown conversion.
type Document struct {
	HTML     string   // complete HTML document
	ChartIDs []string // container ids, in document order
}

// MarkdownConverter turns Markdown with ```plotly blocks into HTML pages.
// Each block holds a chart file (see ParseChart) and is replaced by the
// chart's container; scripts and assets are added to the page.
// It is safe for concurrent use.
type MarkdownConverter struct {
	widget         *Widget
	md             goldmark.Markdown
	pageOpts       []PageOption
	highlightStyle string
	highlightCSS   string
}

// MarkdownOption configures a MarkdownConverter.
type MarkdownOption func(*MarkdownConverter)

// WithPageOptions applies options to every page the converter renders.
func WithPageOptions(opts ...PageOption) MarkdownOption {
	return func(c *MarkdownConverter) {
		c.pageOpts = append(c.pageOpts, opts...)
	}
}

// WithHighlightStyle selects the chroma style of highlighted code blocks.
// Unknown names fall back to chroma's default style.
func WithHighlightStyle(name string) MarkdownOption {
	return func(c *MarkdownConverter) {
		c.highlightStyle = name
	}
}

// NewMarkdownConverter creates a converter rendering charts with w.
func NewMarkdownConverter(w *Widget, opts ...MarkdownOption) (*MarkdownConverter, error) {
	c := &MarkdownConverter{
		widget:         w,
		highlightStyle: DefaultHighlightStyle,
	}
	for _, opt := range opts {
		opt(c)
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var css bytes.Buffer
	if err := formatter.WriteCSS(&css, highlightStyle(c.highlightStyle)); err != nil {
		return nil, fmt.Errorf("%w: highlight stylesheet: %v", ErrHTMLConversion, err)
	}
	c.highlightCSS = css.String()

	c.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(c.highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by highlightCSS in the page head
				),
			),
			&chartExtension{widget: w},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return c, nil
}

func highlightStyle(name string) *chroma.Style {
	return styles.Get(name)
}

// Convert renders markdown as a complete HTML page. A chart block that fails
// to parse or validate fails the whole conversion.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *MarkdownConverter) Convert(ctx context.Context, markdown []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *Document
		err error
	}

	done := make(chan result, 1)

	go func() {
		doc, err := c.convert(markdown)
		done <- result{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

func (c *MarkdownConverter) convert(markdown []byte) (*Document, error) {
	opts := append([]PageOption{WithPageStyle(c.highlightCSS)}, c.pageOpts...)
	page := c.widget.NewPage(opts...)

	pc := parser.NewContext()
	pc.Set(pageKey, page)

	var body bytes.Buffer
	if err := c.md.Convert(markdown, &body, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if err, _ := pc.Get(chartErrKey).(error); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := page.Render(&out, body.String()); err != nil {
		return nil, err
	}

	ids := page.ContainerIDs()
	c.widget.logger.Debug("markdown converted",
		slog.Int("charts", len(ids)),
		slog.Int("bytes", out.Len()),
	)
	return &Document{HTML: out.String(), ChartIDs: ids}, nil
}

// Parser context keys shared by the transformer and the converter.
var (
	pageKey     = parser.NewContextKey()
	chartErrKey = parser.NewContextKey()
)

// kindChart is the AST node kind of a rendered chart block.
var kindChart = ast.NewNodeKind("PlotlyChart")

// chartNode replaces a ```plotly fenced block once rendered.
type chartNode struct {
	ast.BaseBlock
	markup string
}

func (n *chartNode) Kind() ast.NodeKind {
	return kindChart
}

func (n *chartNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Markup": n.markup}, nil)
}

type chartExtension struct {
	widget *Widget
}

func (e *chartExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&chartTransformer{widget: e.widget}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&chartRenderer{}, 100),
	))
}

// chartTransformer renders every ```plotly block against the page stored in
// the parser context. The first failure is stored under chartErrKey.
type chartTransformer struct {
	widget *Widget
}

func (t *chartTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	page, _ := pc.Get(pageKey).(*Page)
	if page == nil {
		return
	}
	source := reader.Source()

	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && isChartBlock(fcb, source) {
			blocks = append(blocks, fcb)
		}
		return ast.WalkContinue, nil
	})

	for i, fcb := range blocks {
		markup, err := t.render(fcb, source, page)
		if err != nil {
			pc.Set(chartErrKey, fmt.Errorf("chart block %d (line %d): %w", i+1, blockLine(fcb, source), err))
			return
		}
		fcb.Parent().ReplaceChild(fcb.Parent(), fcb, &chartNode{markup: markup})
	}
}

func (t *chartTransformer) render(fcb *ast.FencedCodeBlock, source []byte, page *Page) (string, error) {
	var buf bytes.Buffer
	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}

	chart, err := ParseChart(buf.Bytes())
	if err != nil {
		return "", err
	}
	return t.widget.Render(chart, page)
}

func isChartBlock(fcb *ast.FencedCodeBlock, source []byte) bool {
	return strings.EqualFold(string(fcb.Language(source)), ChartLanguage)
}

// blockLine returns the 1-based line of the block's first content line,
// or 0 for an empty block.
func blockLine(fcb *ast.FencedCodeBlock, source []byte) int {
	if fcb.Lines().Len() == 0 {
		return 0
	}
	return bytes.Count(source[:fcb.Lines().At(0).Start], []byte("\n")) + 1
}

type chartRenderer struct{}

func (r *chartRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindChart, r.renderChart)
}

func (r *chartRenderer) renderChart(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(n.(*chartNode).markup)
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}
