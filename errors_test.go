package plotly

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alnah/go-plotly/internal/assets"
	"github.com/alnah/go-plotly/internal/jsvalue"
	"github.com/alnah/go-plotly/internal/script"
)

// ---------------------------------------------------------------------------
// TestConvertError - Internal to public sentinel mapping
// ---------------------------------------------------------------------------

func TestConvertError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input error
		want  error
	}{
		{"unsupported kind", jsvalue.ErrUnsupportedKind, ErrUnsupportedValueKind},
		{"duplicate key", jsvalue.ErrDuplicateKey, ErrDuplicateKey},
		{"formatter name", script.ErrInvalidFormatterName, ErrInvalidFormatterName},
		{"source kind", script.ErrInvalidSourceKind, ErrInvalidSourceKind},
		{"empty container id", script.ErrEmptyContainerID, ErrInvalidContainerID},
		{"style not found", assets.ErrStyleNotFound, ErrStyleNotFound},
		{"template not found", assets.ErrTemplateNotFound, ErrTemplateNotFound},
		{"asset name", assets.ErrInvalidAssetName, ErrInvalidAssetName},
		{"base path", assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{"path traversal", assets.ErrPathTraversal, ErrInvalidAssetPath},
		{"wrapped internal", fmt.Errorf("layout: %w", jsvalue.ErrDuplicateKey), ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertError(tt.input)
			if !errors.Is(got, tt.want) {
				t.Errorf("convertError(%v) = %v, want errors.Is %v", tt.input, got, tt.want)
			}
			if got.Error() != tt.input.Error() {
				t.Errorf("message changed: %q, want %q", got.Error(), tt.input.Error())
			}
		})
	}
}

func TestConvertError_Passthrough(t *testing.T) {
	t.Parallel()

	if convertError(nil) != nil {
		t.Error("convertError(nil) should be nil")
	}
	unknown := errors.New("unknown")
	if got := convertError(unknown); got != unknown {
		t.Errorf("convertError(unknown) = %v, want the same error", got)
	}
	if got := convertError(ErrChartParse); got != ErrChartParse {
		t.Errorf("public sentinels should pass through, got %v", got)
	}
}
