package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Category and keys used by the chart widget.
const (
	CategoryPlotly = "plotly"
	KeyLoading     = "Loading"
)

// DefaultLocale is used when a locale is empty or cannot be parsed.
const DefaultLocale = "en"

// Translator returns the message for key in category, for locale.
// Implementations return key itself when no translation exists.
type Translator interface {
	Translate(locale, category, key string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, category, key string) string

// Translate calls f.
func (f TranslatorFunc) Translate(locale, category, key string) string {
	return f(locale, category, key)
}

// builtin holds the bundled translations of the plotly category.
var builtin = map[string]string{
	"en": "Loading",
	"pl": "Ładowanie",
	"de": "Laden",
	"fr": "Chargement",
	"es": "Cargando",
	"it": "Caricamento",
	"pt": "Carregando",
	"ru": "Загрузка",
	"tr": "Yükleniyor",
	"uk": "Завантаження",
}

// Catalog is a Translator backed by an x/text message catalog.
// Regional locales resolve to their parent language (pl-PL uses pl).
type Catalog struct {
	builder *catalog.Builder
}

// NewCatalog returns a Catalog holding the built-in plotly messages.
func NewCatalog() *Catalog {
	c := &Catalog{builder: catalog.NewBuilder(catalog.Fallback(language.English))}
	for locale, msg := range builtin {
		// Built-in locales are valid tags.
		_ = c.Set(locale, CategoryPlotly, KeyLoading, msg)
	}
	return c
}

// Set adds or replaces a translation.
func (c *Catalog) Set(locale, category, key, msg string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return c.builder.SetString(tag, messageID(category, key), escapeFormat(msg))
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, category, key string) string {
	p := message.NewPrinter(ParseLocale(locale), message.Catalog(c.builder))
	return p.Sprintf(message.Key(messageID(category, key), escapeFormat(key)))
}

// Languages lists the locales the catalog has messages for.
func (c *Catalog) Languages() []string {
	tags := c.builder.Languages()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

var _ Translator = (*Catalog)(nil)

// ParseLocale parses a BCP 47 locale such as "pl", "pl-PL" or "pt_BR".
// Empty or malformed locales give the default locale.
func ParseLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

// ValidLocale reports whether locale parses as a language tag.
func ValidLocale(locale string) bool {
	_, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	return err == nil
}

// Lower lower-cases s with the rules of locale (Turkish dotted I included).
func Lower(locale, s string) string {
	return cases.Lower(ParseLocale(locale)).String(s)
}

func messageID(category, key string) string {
	return category + "." + key
}

// escapeFormat keeps literal percent signs out of printf verb handling.
func escapeFormat(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
