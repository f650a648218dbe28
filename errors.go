package plotly

import (
	"errors"

	"github.com/alnah/go-plotly/internal/assets"
	"github.com/alnah/go-plotly/internal/jsvalue"
	"github.com/alnah/go-plotly/internal/script"
)

// Sentinel errors for library operations.
var (
	// Chart configuration errors. All of them are raised before any output.
	ErrMissingSourceKind    = errors.New("sourceType must be set to csv or json when sourceFile is set")
	ErrInvalidSourceKind    = errors.New("invalid source type")
	ErrUnsupportedValueKind = errors.New("unsupported value kind")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrInvalidFormatterName = errors.New("invalid formatter name")
	ErrInvalidAttribute     = errors.New("invalid HTML attribute")
	ErrInvalidContainerID   = errors.New("invalid container id")

	// Rendering errors.
	ErrNilRegistrar   = errors.New("registrar cannot be nil")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Chart file errors.
	ErrChartParse = errors.New("failed to parse chart")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// convertError maps errors of internal packages to public sentinels.
// Errors that are already public, or unknown, are returned unchanged.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, jsvalue.ErrUnsupportedKind):
		return wrapError(ErrUnsupportedValueKind, err)
	case errors.Is(err, jsvalue.ErrDuplicateKey):
		return wrapError(ErrDuplicateKey, err)
	case errors.Is(err, script.ErrInvalidFormatterName):
		return wrapError(ErrInvalidFormatterName, err)
	case errors.Is(err, script.ErrInvalidSourceKind):
		return wrapError(ErrInvalidSourceKind, err)
	case errors.Is(err, script.ErrEmptyContainerID):
		return wrapError(ErrInvalidContainerID, err)
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetName, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
