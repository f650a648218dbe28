package plotly

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/alnah/go-plotly/internal/i18n"
	"github.com/alnah/go-plotly/internal/jsvalue"
	"github.com/alnah/go-plotly/internal/script"
)

// Message looked up for the loading indicator.
const (
	MessageCategory = i18n.CategoryPlotly
	MessageLoading  = i18n.KeyLoading
)

// DefaultIDPrefix prefixes generated container ids.
const DefaultIDPrefix = "plotly"

// loadingBarCount is the number of animated bars of the loading indicator.
const loadingBarCount = 7

var idPrefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Script is the initialization script generated for one chart.
type Script = script.Script

// Rendered is the output of one chart render.
type Rendered struct {
	ID     string     // container element id
	Markup string     // container element with the loading indicator
	Script Script     // runs after Assets are loaded and Markup is in the DOM
	Assets Descriptor // files the page must reference
}

// Widget renders charts. It is safe for concurrent use once created.
type Widget struct {
	translator       Translator
	locale           string
	logger           *slog.Logger
	styleBase        string
	scriptBase       string
	assetPath        string
	loader           AssetLoader
	loadingAnimation bool
	idPrefix         string

	ids            atomic.Uint64
	descriptor     Descriptor
	loadingContent string
	pageTemplate   *template.Template
}

// NewWidget creates a Widget. Templates are loaded and parsed here, so the
// returned Widget never touches the asset loader again.
func NewWidget(opts ...Option) (*Widget, error) {
	w := &Widget{
		locale:           i18n.DefaultLocale,
		loadingAnimation: true,
		idPrefix:         DefaultIDPrefix,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.translator == nil {
		w.translator = NewCatalog()
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	if !idPrefixPattern.MatchString(w.idPrefix) {
		return nil, fmt.Errorf("%w: prefix %q", ErrInvalidContainerID, w.idPrefix)
	}
	if w.loader == nil {
		loader, err := NewAssetLoader(w.assetPath)
		if err != nil {
			return nil, err
		}
		w.loader = loader
	}

	w.descriptor = Describe(w.styleBase, w.scriptBase)

	loading, err := w.parseTemplate(LoadingTemplateName)
	if err != nil {
		return nil, err
	}
	if w.loadingContent, err = w.renderLoading(loading); err != nil {
		return nil, err
	}
	if w.pageTemplate, err = w.parseTemplate(PageTemplateName); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Widget) parseTemplate(name string) (*template.Template, error) {
	content, err := w.loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s template: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s template: %v", ErrTemplateRender, name, err)
	}
	return tmpl, nil
}

type loadingData struct {
	Bars []int
	Text string
}

// renderLoading renders the indicator once; its text only depends on the locale.
func (w *Widget) renderLoading(tmpl *template.Template) (string, error) {
	data := loadingData{
		Bars: make([]int, loadingBarCount),
		Text: i18n.Lower(w.locale, w.translator.Translate(w.locale, MessageCategory, MessageLoading)),
	}
	for i := range data.Bars {
		data.Bars[i] = i + 1
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// Descriptor returns the assets every chart of this widget needs.
func (w *Widget) Descriptor() Descriptor {
	return w.descriptor
}

// Locale returns the configured locale.
func (w *Widget) Locale() string {
	return w.locale
}

// Render renders chart and hands its script and assets to reg.
// It returns the container markup to place in the page body. On error nothing
// is registered; an id is consumed only when reg rejects the container id.
func (w *Widget) Render(chart Chart, reg Registrar) (string, error) {
	if reg == nil {
		return "", ErrNilRegistrar
	}
	r, err := w.render(chart, reg.NextID)
	if err != nil {
		return "", err
	}
	if err := reg.RegisterScript(r.ID, r.Script); err != nil {
		return "", err
	}
	reg.RegisterAssets(r.Assets)
	return r.Markup, nil
}

// RenderChart renders chart without a registrar. Empty chart ids are
// generated from the widget's own counter.
func (w *Widget) RenderChart(chart Chart) (*Rendered, error) {
	return w.render(chart, w.nextID)
}

func (w *Widget) nextID() string {
	return w.idPrefix + strconv.FormatUint(w.ids.Add(1), 10)
}

func (w *Widget) render(chart Chart, nextID func() string) (*Rendered, error) {
	if err := chart.Validate(); err != nil {
		return nil, err
	}

	cfg, err := chart.composerConfig()
	if err != nil {
		return nil, err
	}

	attrs, err := renderAttributes(chart.Options)
	if err != nil {
		return nil, err
	}

	id := chart.ID
	if id == "" {
		id = nextID()
	}

	loading := w.loadingAnimation && !chart.HideLoading
	s, err := script.Compose(cfg, id, loading)
	if err != nil {
		return nil, convertError(err)
	}

	var content string
	if loading {
		content = w.loadingContent
	}
	markup := `<div id="` + html.EscapeString(id) + `"` + attrs + ">" + content + "</div>"

	w.logger.Debug("chart rendered",
		slog.String("id", id),
		slog.Int("traces", len(chart.Traces)),
		slog.String("source", string(chart.SourceType)),
		slog.Int("formatters", len(chart.Formatters)),
		slog.Bool("loading", loading),
	)

	return &Rendered{ID: id, Markup: markup, Script: s, Assets: w.descriptor}, nil
}

// composerConfig normalizes the chart values for the script composer.
func (c *Chart) composerConfig() (script.Config, error) {
	traces, err := jsvalue.From(c.Traces)
	if err != nil {
		return script.Config{}, fmt.Errorf("traces: %w", convertError(err))
	}
	layout, err := jsvalue.From(c.Layout)
	if err != nil {
		return script.Config{}, fmt.Errorf("layout: %w", convertError(err))
	}
	chartOptions, err := jsvalue.From(c.ChartOptions)
	if err != nil {
		return script.Config{}, fmt.Errorf("chartOptions: %w", convertError(err))
	}
	return script.Config{
		Traces:       traces,
		Layout:       layout,
		ChartOptions: chartOptions,
		Source:       c.source(),
		Formatters:   c.formatters(),
	}, nil
}

// renderAttributes renders container attributes after the id. An "id" option
// is ignored: the container id always comes from the chart or the registrar.
//
// Values: strings and numbers are escaped, true renders a bare attribute,
// false and nil omit it, sequences are joined with spaces (class lists).
// "data" and "aria" mappings expand to data-* and aria-* attributes, and a
// "style" mapping renders as CSS declarations.
func renderAttributes(options M) (string, error) {
	var b strings.Builder
	for _, kv := range options {
		if kv.Key == "id" {
			continue
		}
		val, err := jsvalue.From(kv.Value)
		if err != nil {
			return "", fmt.Errorf("options: %w", convertError(err))
		}
		if err := writeAttribute(&b, kv.Key, val, false); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeAttribute(b *strings.Builder, name string, val jsvalue.Value, nested bool) error {
	if !attributeNamePattern.MatchString(name) {
		return fmt.Errorf("%w: name %q", ErrInvalidAttribute, name)
	}
	switch x := val.(type) {
	case jsvalue.Null:
		return nil
	case jsvalue.Bool:
		if x {
			b.WriteString(" " + name)
		}
		return nil
	case jsvalue.Object:
		switch {
		case nested:
			return writeJSONAttribute(b, name, x)
		case name == "data" || name == "aria":
			for _, m := range x {
				if err := writeAttribute(b, name+"-"+m.Key, m.Value, true); err != nil {
					return err
				}
			}
			return nil
		case name == "style":
			return writeStyleAttribute(b, x)
		}
		return fmt.Errorf("%w: %q cannot hold a mapping", ErrInvalidAttribute, name)
	case jsvalue.Array:
		if nested {
			return writeJSONAttribute(b, name, x)
		}
		parts := make([]string, 0, len(x))
		for _, item := range x {
			text, ok := scalarText(item)
			if !ok {
				return fmt.Errorf("%w: %q lists a %s", ErrInvalidAttribute, name, item.Kind())
			}
			if text != "" {
				parts = append(parts, text)
			}
		}
		writeQuoted(b, name, strings.Join(parts, " "))
		return nil
	}

	text, ok := scalarText(val)
	if !ok {
		return fmt.Errorf("%w: %q holds a %s", ErrInvalidAttribute, name, val.Kind())
	}
	writeQuoted(b, name, text)
	return nil
}

func writeStyleAttribute(b *strings.Builder, decls jsvalue.Object) error {
	parts := make([]string, 0, len(decls))
	for _, m := range decls {
		if !attributeNamePattern.MatchString("style:" + m.Key) {
			return fmt.Errorf("%w: style %q", ErrInvalidAttribute, m.Key)
		}
		if _, isNull := m.Value.(jsvalue.Null); isNull {
			continue
		}
		text, ok := scalarText(m.Value)
		if !ok {
			return fmt.Errorf("%w: style %q holds a %s", ErrInvalidAttribute, m.Key, m.Value.Kind())
		}
		parts = append(parts, m.Key+": "+text+";")
	}
	if len(parts) > 0 {
		writeQuoted(b, "style", strings.Join(parts, " "))
	}
	return nil
}

func writeJSONAttribute(b *strings.Builder, name string, val jsvalue.Value) error {
	text, err := jsvalue.Serialize(val)
	if err != nil {
		return fmt.Errorf("options: %w", convertError(err))
	}
	writeQuoted(b, name, text)
	return nil
}

func writeQuoted(b *strings.Builder, name, value string) {
	b.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}

// scalarText returns the attribute text of a string, number, boolean or code value.
func scalarText(val jsvalue.Value) (string, bool) {
	switch x := val.(type) {
	case jsvalue.String:
		return string(x), true
	case jsvalue.Code:
		return string(x), true
	case jsvalue.Int, jsvalue.Uint, jsvalue.Float, jsvalue.Bool:
		text, err := jsvalue.Serialize(x)
		return text, err == nil
	}
	return "", false
}
