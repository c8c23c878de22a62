package fluid

// linSolve relaxes x = (x0 + a*(right+left+down+up)) / c in place.
// Sweeps run row-major and read neighbours already updated in the same
// sweep (Gauss–Seidel), so the cell order is part of the result.
func (g *Grid) linSolve(b Boundary, x, x0 []float32, a, c float32) {
	n := g.n
	for k := 0; k < g.params.Iterations; k++ {
		for j := 1; j < n-1; j++ {
			row := j * n
			for i := 1; i < n-1; i++ {
				idx := row + i
				x[idx] = (x0[idx] + a*(x[idx+1]+x[idx-1]+x[idx+n]+x[idx-n])) / c
			}
		}
		g.SetBoundary(b, x)
	}
}

// Diffuse smooths x0 into x with an implicit backward-Euler step.
//
// The centre coefficient is 1+6a rather than the 1+4a of a plain
// 4-neighbour stencil; it over-damps slightly and is kept for parity with
// the reference behaviour.
//
// x is seeded with x0 before relaxing, so whatever a shared scratch buffer
// held before never feeds into the result.
func (g *Grid) Diffuse(b Boundary, x, x0 []float32, rate, dt float64) {
	inner := float64(g.n - 2)
	a := dt * rate * inner * inner
	copy(x, x0)
	g.linSolve(b, x, x0, float32(a), float32(1+6*a))
}
