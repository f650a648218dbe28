package plotly

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/alnah/go-plotly/internal/assets"
)

// Registrar collects what a rendered chart needs from its page: a fresh
// container id, the assets to load and the script to run after them.
type Registrar interface {
	// NextID returns an id not used by any other container of the page.
	NextID() string

	// RegisterAssets declares files the page must load before scripts run.
	RegisterAssets(d Descriptor)

	// RegisterScript queues the script of the container containerID. It
	// fails when the page already holds a container with that id.
	RegisterScript(containerID string, s Script) error
}

// DefaultPageTitle is the title of pages created without WithPageTitle.
const DefaultPageTitle = "Charts"

// Page is a Registrar that renders a standalone HTML document. Assets are
// emitted once per (path, version) however many charts declare them, and
// scripts run in registration order at the end of the body.
//
// A Page is not safe for concurrent use; use one Page per document.
type Page struct {
	title    string
	lang     string
	idPrefix string
	style    string
	tmpl     *template.Template

	count   int
	ids     map[string]struct{}
	seen    map[Asset]struct{}
	styles  []Asset
	scripts []Asset
	inline  []registeredScript
}

type registeredScript struct {
	containerID string
	body        string
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithPageTitle sets the document title.
func WithPageTitle(title string) PageOption {
	return func(p *Page) {
		p.title = title
	}
}

// WithPageLang sets the lang attribute of the html element.
func WithPageLang(lang string) PageOption {
	return func(p *Page) {
		p.lang = lang
	}
}

// WithPageIDPrefix sets the prefix of ids returned by NextID.
func WithPageIDPrefix(prefix string) PageOption {
	return func(p *Page) {
		p.idPrefix = prefix
	}
}

// WithPageStyle adds an inline stylesheet to the document head.
func WithPageStyle(css string) PageOption {
	return func(p *Page) {
		p.style = css
	}
}

// defaultPageTemplate parses the embedded page template once.
var defaultPageTemplate = sync.OnceValue(func() *template.Template {
	content, err := assets.NewEmbeddedLoader().LoadTemplate(assets.PageTemplateName)
	if err != nil {
		panic(err)
	}
	return template.Must(template.New(assets.PageTemplateName).Parse(content))
})

// NewPage creates a Page rendered with the embedded page template.
func NewPage(opts ...PageOption) *Page {
	return newPage(defaultPageTemplate(), "", DefaultIDPrefix, opts)
}

// NewPage creates a Page rendered with the widget's page template, using the
// widget's locale as lang and its id prefix.
func (w *Widget) NewPage(opts ...PageOption) *Page {
	return newPage(w.pageTemplate, w.locale, w.idPrefix, opts)
}

func newPage(tmpl *template.Template, lang, idPrefix string, opts []PageOption) *Page {
	p := &Page{
		title:    DefaultPageTitle,
		lang:     lang,
		idPrefix: idPrefix,
		tmpl:     tmpl,
		ids:      make(map[string]struct{}),
		seen:     make(map[Asset]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NextID implements Registrar. Ids already taken by explicit chart ids are
// skipped.
func (p *Page) NextID() string {
	for {
		p.count++
		id := p.idPrefix + strconv.Itoa(p.count)
		if _, taken := p.ids[id]; !taken {
			return id
		}
	}
}

// RegisterAssets implements Registrar.
func (p *Page) RegisterAssets(d Descriptor) {
	p.styles = p.appendNew(p.styles, d.Styles)
	p.scripts = p.appendNew(p.scripts, d.Scripts)
}

func (p *Page) appendNew(dst, src []Asset) []Asset {
	for _, a := range src {
		if _, dup := p.seen[a]; dup {
			continue
		}
		p.seen[a] = struct{}{}
		dst = append(dst, a)
	}
	return dst
}

// RegisterScript implements Registrar. A second script for the same
// container id returns ErrInvalidContainerID and is not queued.
func (p *Page) RegisterScript(containerID string, s Script) error {
	if _, dup := p.ids[containerID]; dup {
		return fmt.Errorf("%w: %q is already used on this page", ErrInvalidContainerID, containerID)
	}
	p.ids[containerID] = struct{}{}
	p.inline = append(p.inline, registeredScript{containerID: containerID, body: s.Body})
	return nil
}

// Assets returns the deduplicated assets registered so far.
func (p *Page) Assets() Descriptor {
	return Descriptor{
		Styles:  append([]Asset(nil), p.styles...),
		Scripts: append([]Asset(nil), p.scripts...),
	}
}

// ContainerIDs returns the ids of registered scripts, in order.
func (p *Page) ContainerIDs() []string {
	ids := make([]string, len(p.inline))
	for i, s := range p.inline {
		ids[i] = s.containerID
	}
	return ids
}

type pageData struct {
	Lang    string
	Title   string
	Styles  []string
	Style   template.CSS
	Scripts []string
	Body    template.HTML
	Inline  []template.JS
}

// Render writes the complete document with body as the content of <body>.
// body is trusted markup, typically the concatenated output of Widget.Render.
func (p *Page) Render(w io.Writer, body string) error {
	data := pageData{
		Lang:    p.lang,
		Title:   p.title,
		Styles:  assetURLs(p.styles),
		Style:   template.CSS(sanitizeStyle(p.style)), // #nosec G203 -- caller-provided stylesheet
		Scripts: assetURLs(p.scripts),
		Body:    template.HTML(body), // #nosec G203 -- widget markup is escaped at render time
		Inline:  make([]template.JS, len(p.inline)),
	}
	for i, s := range p.inline {
		data.Inline[i] = template.JS(sanitizeScript(s.body)) // #nosec G203 -- composed script, literals escaped
	}

	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return nil
}

// Inject inserts the registered assets and scripts into an existing HTML
// document. Stylesheets and library scripts go before </head> (or right after
// <body>, or at the start); chart scripts go before the last </body> (or at
// the end).
func (p *Page) Inject(document string) string {
	var head strings.Builder
	for _, a := range p.styles {
		head.WriteString(`<link rel="stylesheet" href="` + html.EscapeString(a.URL()) + `">`)
	}
	if p.style != "" {
		head.WriteString("<style>" + sanitizeStyle(p.style) + "</style>")
	}
	for _, a := range p.scripts {
		head.WriteString(`<script src="` + html.EscapeString(a.URL()) + `"></script>`)
	}

	var tail strings.Builder
	for _, s := range p.inline {
		tail.WriteString("<script>" + sanitizeScript(s.body) + "</script>")
	}

	document = insertHead(document, head.String())
	return insertTail(document, tail.String())
}

func insertHead(document, block string) string {
	if block == "" {
		return document
	}
	lower := strings.ToLower(document)
	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return document[:idx] + block + document[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(document[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return document[:insertPos] + block + document[insertPos:]
		}
	}
	return block + document
}

func insertTail(document, block string) string {
	if block == "" {
		return document
	}
	if idx := strings.LastIndex(strings.ToLower(document), "</body>"); idx != -1 {
		return document[:idx] + block + document[idx:]
	}
	return document + block
}

// Inline content must not close its raw-text element. Scripts only get "</"
// rewritten; "<!--" in a script is a comment and stays as written.
var (
	scriptEscaper = strings.NewReplacer("</", `<\/`)
	styleEscaper  = strings.NewReplacer("</", `<\/`, "<!--", `<\!--`)
)

func sanitizeScript(s string) string {
	return scriptEscaper.Replace(s)
}

func sanitizeStyle(s string) string {
	return styleEscaper.Replace(s)
}

func assetURLs(list []Asset) []string {
	urls := make([]string, len(list))
	for i, a := range list {
		urls[i] = a.URL()
	}
	return urls
}

var _ Registrar = (*Page)(nil)
