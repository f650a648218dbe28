package assets

import (
	"embed"
	"fmt"
)

// The loading-indicator stylesheet, styles/plotly.css.
//
//go:embed styles/*
var styles embed.FS

// The container markup, templates/loading.html, and the standalone
// document, templates/page.html.
//
//go:embed templates/*
var templates embed.FS

// EmbeddedLoader serves the stylesheet and templates compiled into the
// binary. It is the last fallback of an AssetResolver, so charts and pages
// render without any files on disk.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns a loader over the built-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the built-in stylesheet called name, given without its
// .css extension (StyleName for the loading indicator).
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate returns the built-in template called name, given without its
// .html extension: LoadingTemplateName or PageTemplateName.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
