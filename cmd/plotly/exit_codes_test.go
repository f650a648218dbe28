package main

// Notes:
// - exitCodeFor: we test the CLI, config and library sentinels, plus wrapped
//   errors to verify the errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-plotly"
	"github.com/alnah/go-plotly/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid field", config.ErrInvalidField, ExitUsage},
		{"chart parse", plotly.ErrChartParse, ExitUsage},
		{"missing source kind", plotly.ErrMissingSourceKind, ExitUsage},
		{"invalid source kind", plotly.ErrInvalidSourceKind, ExitUsage},
		{"unsupported value", plotly.ErrUnsupportedValueKind, ExitUsage},
		{"duplicate key", plotly.ErrDuplicateKey, ExitUsage},
		{"formatter name", plotly.ErrInvalidFormatterName, ExitUsage},
		{"attribute", plotly.ErrInvalidAttribute, ExitUsage},
		{"container id", plotly.ErrInvalidContainerID, ExitUsage},
		{"template not found", plotly.ErrTemplateNotFound, ExitUsage},
		{"asset path", plotly.ErrInvalidAssetPath, ExitUsage},
		{"wrapped chart parse", fmt.Errorf("chart.yaml: %w", plotly.ErrChartParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"batch failure", fmt.Errorf("%d conversion(s) failed", 2), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Exit code values
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("Unix conventions broken: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
