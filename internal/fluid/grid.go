package fluid

import (
	"fmt"
	"math"
)

// Grid is a square N×N fluid. Fields are row-major: cell (x, y) lives at
// offset x + y*N. The exported slices may be read and zeroed directly
// between ticks.
type Grid struct {
	n      int
	params Params

	Vx, Vy   []float32
	Vx0, Vy0 []float32
	R, G, B  []float32
	S        []float32

	// projection scratch, fully rewritten by every Project call
	pressure   []float32
	divergence []float32
}

// New allocates a zeroed grid of side size.
func New(size int, p Params) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cells := size * size
	return &Grid{
		n:          size,
		params:     p,
		Vx:         make([]float32, cells),
		Vy:         make([]float32, cells),
		Vx0:        make([]float32, cells),
		Vy0:        make([]float32, cells),
		R:          make([]float32, cells),
		G:          make([]float32, cells),
		B:          make([]float32, cells),
		S:          make([]float32, cells),
		pressure:   make([]float32, cells),
		divergence: make([]float32, cells),
	}, nil
}

// MustNew is like New but panics on invalid arguments.
func MustNew(size int, p Params) *Grid {
	g, err := New(size, p)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Size() int      { return g.n }
func (g *Grid) Params() Params { return g.params }

// SetParams replaces the solver settings used from the next Step on.
func (g *Grid) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.params = p
	return nil
}

// IX returns the flat offset of (x, y). Out-of-range coordinates are clamped
// to the nearest edge cell on each axis, so they alias to the border instead
// of failing.
func (g *Grid) IX(x, y int) int {
	last := g.n - 1
	if x < 0 {
		x = 0
	} else if x > last {
		x = last
	}
	if y < 0 {
		y = 0
	} else if y > last {
		y = last
	}
	return x + y*g.n
}

// AddDensity adds ink to the three channels at (x, y).
func (g *Grid) AddDensity(x, y int, dr, dg, db float32) {
	i := g.IX(x, y)
	g.R[i] += dr
	g.G[i] += dg
	g.B[i] += db
}

// AddVelocity adds (dx, dy) to the velocity at (x, y).
func (g *Grid) AddVelocity(x, y int, dx, dy float32) {
	i := g.IX(x, y)
	g.Vx[i] += dx
	g.Vy[i] += dy
}

// ScaleDensity multiplies all three channels at (x, y) by factor.
func (g *Grid) ScaleDensity(x, y int, factor float32) {
	i := g.IX(x, y)
	g.R[i] *= factor
	g.G[i] *= factor
	g.B[i] *= factor
}

// Channels returns the R, G and B fields in that order.
func (g *Grid) Channels() [3][]float32 {
	return [3][]float32{g.R, g.G, g.B}
}

// Reset clears ink and velocity. The density scratch S is left alone.
func (g *Grid) Reset() {
	for _, f := range [][]float32{g.R, g.G, g.B, g.Vx, g.Vy, g.Vx0, g.Vy0} {
		clear(f)
	}
}

// Finite reports whether every velocity and density cell is a finite number.
func (g *Grid) Finite() bool {
	for _, f := range [][]float32{g.Vx, g.Vy, g.R, g.G, g.B} {
		for _, v := range f {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return false
			}
		}
	}
	return true
}

// Divergence writes the central-difference divergence of (vx, vy) into dst
// for interior cells and zero on the boundary ring.
func (g *Grid) Divergence(vx, vy, dst []float32) {
	n := g.n
	clear(dst)
	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			idx := i + j*n
			dst[idx] = 0.5 * (vx[idx+1] - vx[idx-1] + vy[idx+n] - vy[idx-n])
		}
	}
}
