package scoring

import "errors"

var (
	// ErrInvalidWeight indicates a negative or non-finite dimension weight.
	ErrInvalidWeight = errors.New("invalid weight")
)
