package vocab

import "errors"

var (
	// ErrEmptyLabel indicates a blank label in a vocabulary list.
	ErrEmptyLabel = errors.New("empty label")

	// ErrDuplicateLabel indicates a label listed twice in one dimension.
	ErrDuplicateLabel = errors.New("duplicate label")
)
