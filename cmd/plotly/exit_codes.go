package main

import (
	"errors"
	"os"

	"github.com/alnah/go-plotly"
	"github.com/alnah/go-plotly/internal/config"
)

// Exit codes for the plotly CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every output written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, chart or Markdown input
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, plotly.ErrChartParse) ||
		errors.Is(err, plotly.ErrMissingSourceKind) ||
		errors.Is(err, plotly.ErrInvalidSourceKind) ||
		errors.Is(err, plotly.ErrUnsupportedValueKind) ||
		errors.Is(err, plotly.ErrDuplicateKey) ||
		errors.Is(err, plotly.ErrInvalidFormatterName) ||
		errors.Is(err, plotly.ErrInvalidAttribute) ||
		errors.Is(err, plotly.ErrInvalidContainerID) ||
		errors.Is(err, plotly.ErrStyleNotFound) ||
		errors.Is(err, plotly.ErrTemplateNotFound) ||
		errors.Is(err, plotly.ErrTemplateRender) ||
		errors.Is(err, plotly.ErrInvalidAssetName) ||
		errors.Is(err, plotly.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
