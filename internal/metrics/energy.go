package metrics

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/san-kum/fluidlab/internal/fluid"
)

func vec(f []float32) blas32.Vector {
	return blas32.Vector{N: len(f), Inc: 1, Data: f}
}

// KineticEnergyOf is 0.5*(Vx·Vx + Vy·Vy) over the whole grid.
func KineticEnergyOf(g *fluid.Grid) float64 {
	vx, vy := vec(g.Vx), vec(g.Vy)
	return 0.5 * (float64(blas32.Dot(vx, vx)) + float64(blas32.Dot(vy, vy)))
}

// KineticEnergy averages KineticEnergyOf over the observed ticks.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(g *fluid.Grid, tick int) {
	e.last = KineticEnergyOf(g)
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the energy at the most recent observation.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.last = 0
	e.samples = 0
}
