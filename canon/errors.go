package canon

import "errors"

var (
	// ErrInvalidLocationMode indicates an unsupported location mode.
	ErrInvalidLocationMode = errors.New("invalid location mode")

	// ErrInvalidRegion indicates a malformed region table entry.
	ErrInvalidRegion = errors.New("invalid region")
)
