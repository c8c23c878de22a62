package metrics

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/san-kum/fluidlab/internal/fluid"
)

// MaxDivergenceOf is the largest |central divergence| over interior cells.
func MaxDivergenceOf(g *fluid.Grid, scratch []float32) float64 {
	n := g.Size()
	if len(scratch) < n*n {
		scratch = make([]float32, n*n)
	}
	scratch = scratch[:n*n]
	g.Divergence(g.Vx, g.Vy, scratch)
	i := blas32.Iamax(vec(scratch))
	if i < 0 {
		return 0
	}
	return math.Abs(float64(scratch[i]))
}

// MaxDivergence is the worst divergence seen over the run.
type MaxDivergence struct {
	name    string
	max     float64
	scratch []float32
}

func NewMaxDivergence() *MaxDivergence {
	return &MaxDivergence{name: "max_divergence"}
}

func (d *MaxDivergence) Name() string { return d.name }

func (d *MaxDivergence) Observe(g *fluid.Grid, tick int) {
	n := g.Size()
	if len(d.scratch) != n*n {
		d.scratch = make([]float32, n*n)
	}
	d.max = math.Max(d.max, MaxDivergenceOf(g, d.scratch))
}

func (d *MaxDivergence) Value() float64 { return d.max }

func (d *MaxDivergence) Reset() { d.max = 0 }

// Stability is the fraction of observed ticks whose peak speed component
// stayed within threshold and whose fields were finite.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(g *fluid.Grid, tick int) {
	s.samples++
	if !g.Finite() {
		s.violations++
		return
	}
	for _, f := range [][]float32{g.Vx, g.Vy} {
		if i := blas32.Iamax(vec(f)); i >= 0 && math.Abs(float64(f[i])) > s.threshold {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
