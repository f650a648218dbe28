package jsvalue

import "errors"

// Sentinel errors for value conversion and serialization.
var (
	// ErrUnsupportedKind indicates a value outside the recognized kinds.
	ErrUnsupportedKind = errors.New("unsupported value kind")

	// ErrDuplicateKey indicates a key repeated within one mapping level.
	ErrDuplicateKey = errors.New("duplicate mapping key")
)
