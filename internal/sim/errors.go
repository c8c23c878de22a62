package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrUnstable indicates a field picked up NaN or Inf during a tick.
	ErrUnstable = errors.New("sim: simulation unstable (NaN or Inf detected)")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled by context")
)

// SimError records where in a run something went wrong.
type SimError struct {
	Tick    int
	Time    float64
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %s", e.Tick, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
