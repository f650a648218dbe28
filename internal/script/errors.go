package script

import "errors"

// Sentinel errors for script composition.
var (
	ErrEmptyContainerID     = errors.New("container id cannot be empty")
	ErrInvalidFormatterName = errors.New("invalid formatter name")
	ErrInvalidSourceKind    = errors.New("invalid source kind")
)
