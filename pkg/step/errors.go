// pkg/step/errors.go
package step

import "errors"

var (
	// ErrNotTrained indicates Transform was called before Fit. This is a
	// contract violation, never a silent no-op.
	ErrNotTrained = errors.New("step is not trained")

	// ErrTypeMismatch indicates a selected column's type violates the
	// step's precondition. Fit aborts entirely; no column is trained.
	ErrTypeMismatch = errors.New("column type mismatch")

	// ErrNegativeThreshold indicates a learned lower-bound threshold was
	// negative; the step assumes non-negative left-censored data.
	ErrNegativeThreshold = errors.New("threshold is negative")

	// ErrMissingVocabulary indicates a trained dummy column has no stored
	// level vocabulary; the trained step is inconsistent.
	ErrMissingVocabulary = errors.New("no stored level vocabulary")

	// ErrMissingColumn indicates a trained column is absent from the
	// dataset handed to Transform.
	ErrMissingColumn = errors.New("trained column not present in dataset")
)
