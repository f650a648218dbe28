package plotly

import (
	"log/slog"
)

// Option configures a Widget.
type Option func(*Widget)

// WithTranslator sets the translator of the loading text.
// Default: NewCatalog().
func WithTranslator(t Translator) Option {
	return func(w *Widget) {
		w.translator = t
	}
}

// WithLocale sets the locale used to translate and lower-case the loading
// text, and the lang attribute of pages created by the widget. Default: "en".
func WithLocale(locale string) Option {
	return func(w *Widget) {
		w.locale = locale
	}
}

// WithLogger sets the structured logger. Default: discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// WithStyleBase sets the URL prefix the stylesheet is served from.
// Default: DefaultAssetBase.
func WithStyleBase(base string) Option {
	return func(w *Widget) {
		w.styleBase = base
	}
}

// WithScriptBase sets the URL prefix the charting library is served from.
// Default: DefaultAssetBase.
func WithScriptBase(base string) Option {
	return func(w *Widget) {
		w.scriptBase = base
	}
}

// WithAssetPath loads templates and the stylesheet from a custom directory,
// falling back to the embedded copies for files it does not contain.
func WithAssetPath(path string) Option {
	return func(w *Widget) {
		w.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(w *Widget) {
		w.loader = loader
	}
}

// WithLoadingAnimation sets whether charts show the loading indicator unless
// they opt out with Chart.HideLoading. Default: true.
func WithLoadingAnimation(enabled bool) Option {
	return func(w *Widget) {
		w.loadingAnimation = enabled
	}
}

// WithIDPrefix sets the prefix of container ids generated by RenderChart and
// by pages created with Widget.NewPage. Default: "plotly".
func WithIDPrefix(prefix string) Option {
	return func(w *Widget) {
		w.idPrefix = prefix
	}
}
