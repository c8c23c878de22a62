package fluid

// Advect moves d0 along (vx, vy) into d. Each interior cell is traced
// backwards by dt and sampled bilinearly, which stays bounded for any
// velocity at the cost of some numerical blur.
func (g *Grid) Advect(b Boundary, d, d0, vx, vy []float32, dt float64) {
	n := g.n
	dt0 := float32(dt * float64(n-2))
	lo, hi := float32(0.5), float32(n)+0.5

	for j := 1; j < n-1; j++ {
		row := j * n
		for i := 1; i < n-1; i++ {
			idx := row + i
			x := float32(i) - dt0*vx[idx]
			y := float32(j) - dt0*vy[idx]

			if x < lo {
				x = lo
			}
			if x > hi {
				x = hi
			}
			if y < lo {
				y = lo
			}
			if y > hi {
				y = hi
			}

			// x and y are at least 0.5 here, so truncation is floor
			i0, j0 := int(x), int(y)
			i1, j1 := i0+1, j0+1

			s1 := x - float32(i0)
			s0 := 1 - s1
			t1 := y - float32(j0)
			t0 := 1 - t1

			d[idx] = s0*(t0*d0[g.IX(i0, j0)]+t1*d0[g.IX(i0, j1)]) +
				s1*(t0*d0[g.IX(i1, j0)]+t1*d0[g.IX(i1, j1)])
		}
	}
	g.SetBoundary(b, d)
}
