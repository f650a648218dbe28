package plotly

import (
	"github.com/alnah/go-plotly/internal/assets"
)

// LibraryVersion is the pinned Plotly.js release the generated scripts target.
const LibraryVersion = assets.LibraryVersion

// DefaultAssetBase is the URL prefix used when no style or script base is set.
const DefaultAssetBase = assets.DefaultAssetBase

// Asset is one versioned file a page must reference. URL returns the path
// with the version as a ?v= query.
type Asset = assets.Asset

// Descriptor lists the stylesheets and scripts a chart needs, in load order.
type Descriptor = assets.Descriptor

// Describe returns the asset descriptor for the given URL prefixes:
// "<styleBase>/css/plotly.css" then "<scriptBase>/js/plotly.min.js", both at
// LibraryVersion. Empty bases use DefaultAssetBase. The result only depends
// on the arguments.
func Describe(styleBase, scriptBase string) Descriptor {
	return assets.Describe(styleBase, scriptBase)
}

// Built-in asset names.
const (
	// StyleName is the stylesheet served at css/plotly.css.
	StyleName = assets.StyleName

	// LoadingTemplateName renders the loading indicator.
	LoadingTemplateName = assets.LoadingTemplateName

	// PageTemplateName renders standalone pages.
	PageTemplateName = assets.PageTemplateName
)

// AssetLoader defines the contract for loading the stylesheet and HTML
// templates. Implementations may load from filesystem, embedded assets,
// a database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - styles/plotly.css for the loading-indicator stylesheet
//   - templates/loading.html and templates/page.html
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter converts internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.loader.LoadStyle(name)
	if err != nil {
		return "", convertError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.loader.LoadTemplate(name)
	if err != nil {
		return "", convertError(err)
	}
	return content, nil
}

// Stylesheet returns the loading-indicator stylesheet, for publishing at
// the css/plotly.css location of the style base.
func Stylesheet(loader AssetLoader) (string, error) {
	if loader == nil {
		var err error
		if loader, err = NewAssetLoader(""); err != nil {
			return "", err
		}
	}
	return loader.LoadStyle(StyleName)
}
