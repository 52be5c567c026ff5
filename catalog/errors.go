package catalog

import "errors"

var (
	// ErrVocabularyRequired indicates a catalog was created without a vocabulary.
	ErrVocabularyRequired = errors.New("vocabulary is required")

	// ErrDuplicateInvestor indicates two investors share an ID.
	ErrDuplicateInvestor = errors.New("duplicate investor")

	// ErrDuplicateStartup indicates two startups share an ID.
	ErrDuplicateStartup = errors.New("duplicate startup")

	// ErrDanglingReference indicates a reference to an unknown investor or startup.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrDuplicateInteraction indicates a repeated startup or investor in the interaction log.
	ErrDuplicateInteraction = errors.New("duplicate interaction")

	// ErrNoCatalog indicates a Holder has not been loaded yet.
	ErrNoCatalog = errors.New("no catalog loaded")

	// ErrInvalidDataset indicates the raw dataset could not be decoded.
	ErrInvalidDataset = errors.New("invalid dataset")
)
