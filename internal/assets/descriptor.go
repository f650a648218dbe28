package assets

import (
	"net/url"
	"strings"
)

// LibraryVersion is the pinned Plotly.js release the composed scripts target.
const LibraryVersion = "1.29.3"

// DefaultAssetBase is the URL prefix used when a base is left empty.
const DefaultAssetBase = "/assets/plotly"

// Relative locations under the style and script bases.
const (
	StylePath  = "css/plotly.css"
	ScriptPath = "js/plotly.min.js"
)

// Asset is one file a page must reference.
type Asset struct {
	Path    string
	Version string
}

// URL returns the reference to put in markup, with the version as a query.
func (a Asset) URL() string {
	if a.Version == "" {
		return a.Path
	}
	sep := "?"
	if strings.Contains(a.Path, "?") {
		sep = "&"
	}
	return a.Path + sep + "v=" + url.QueryEscape(a.Version)
}

// Descriptor lists the stylesheets and scripts of the widget, in load order.
type Descriptor struct {
	Styles  []Asset
	Scripts []Asset
}

// Assets returns styles followed by scripts.
func (d Descriptor) Assets() []Asset {
	out := make([]Asset, 0, len(d.Styles)+len(d.Scripts))
	out = append(out, d.Styles...)
	return append(out, d.Scripts...)
}

// Describe returns the descriptor for the given bases. It is pure: the same
// bases always give the same descriptor.
func Describe(styleBase, scriptBase string) Descriptor {
	return Descriptor{
		Styles:  []Asset{{Path: joinBase(styleBase, StylePath), Version: LibraryVersion}},
		Scripts: []Asset{{Path: joinBase(scriptBase, ScriptPath), Version: LibraryVersion}},
	}
}

func joinBase(base, rel string) string {
	if base == "" {
		base = DefaultAssetBase
	}
	return strings.TrimRight(base, "/") + "/" + rel
}
