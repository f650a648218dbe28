package plotly

import "github.com/alnah/go-plotly/internal/i18n"

// Translator returns the message for key in category, for locale.
// Implementations return key itself when no translation exists.
// The widget requests key "Loading" in category "plotly".
type Translator interface {
	Translate(locale, category, key string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc = i18n.TranslatorFunc

// Catalog is the built-in Translator. It bundles the loading text for en,
// pl, de, fr, es, it, pt, ru, tr and uk, and accepts more through Set.
type Catalog = i18n.Catalog

// NewCatalog returns a Catalog holding the built-in messages.
func NewCatalog() *Catalog {
	return i18n.NewCatalog()
}
