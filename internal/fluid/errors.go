package fluid

import "errors"

var (
	// ErrInvalidSize indicates a non-positive grid side length.
	ErrInvalidSize = errors.New("fluid: grid size must be positive")

	// ErrInvalidParams indicates a time step, rate or iteration count that
	// the solver cannot use.
	ErrInvalidParams = errors.New("fluid: invalid solver parameters")

	// ErrDimensionMismatch indicates a snapshot captured at a different size.
	ErrDimensionMismatch = errors.New("fluid: snapshot dimension mismatch")
)
