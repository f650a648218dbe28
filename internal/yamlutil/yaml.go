// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Configuration files decode strictly into structs; chart files decode into
// ordered mappings so key order survives into the generated script.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalOrdered decodes a document whose root is a mapping. Every mapping,
// nested ones included, comes back as a yaml.MapSlice in document order.
// JSON documents are accepted as well, being valid YAML.
func UnmarshalOrdered(data []byte) (yaml.MapSlice, error) {
	var root any
	if err := validateInput(data, &root); err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	switch m := root.(type) {
	case yaml.MapSlice:
		return m, nil
	case nil:
		return nil, ErrNilData
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, root)
	}
}

// FormatError renders a parse error with its source excerpt when the
// underlying library provides one.
func FormatError(err error) string {
	return yaml.FormatError(err, false, true)
}
