package fluid

import (
	"fmt"
	"math"
)

const (
	DefaultDt         = 0.1
	DefaultIterations = 4
)

// Params are the per-tick solver settings. Step copies them once at the
// start of a tick, so a change made between ticks applies to the next one.
type Params struct {
	Dt         float64 `yaml:"dt" json:"dt"`
	Diffusion  float64 `yaml:"diffusion" json:"diffusion"`
	Viscosity  float64 `yaml:"viscosity" json:"viscosity"`
	Iterations int     `yaml:"iterations" json:"iterations"`
}

func DefaultParams() Params {
	return Params{
		Dt:         DefaultDt,
		Diffusion:  0,
		Viscosity:  0,
		Iterations: DefaultIterations,
	}
}

// Validate rejects values the kernels cannot work with. Large values are
// accepted: they may look unstable but they are not errors.
func (p Params) Validate() error {
	if !(p.Dt > 0) || math.IsInf(p.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidParams, p.Dt)
	}
	if !(p.Diffusion >= 0) || math.IsInf(p.Diffusion, 0) {
		return fmt.Errorf("%w: diffusion must be non-negative, got %v", ErrInvalidParams, p.Diffusion)
	}
	if !(p.Viscosity >= 0) || math.IsInf(p.Viscosity, 0) {
		return fmt.Errorf("%w: viscosity must be non-negative, got %v", ErrInvalidParams, p.Viscosity)
	}
	if p.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidParams, p.Iterations)
	}
	return nil
}
