package venturematch

import "errors"

var (
	// ErrNoStorage indicates an operation that needs snapshot storage on an
	// engine opened without it.
	ErrNoStorage = errors.New("engine has no storage configured")

	// ErrInvalidOption indicates an invalid engine option.
	ErrInvalidOption = errors.New("invalid engine option")
)
