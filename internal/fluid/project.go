package fluid

// Project removes the divergent part of (vx, vy) in place. p and div are
// scratch fields of the grid's size; their previous contents are ignored.
func (g *Grid) Project(vx, vy, p, div []float32) {
	n := g.n
	fn := float32(n)

	for j := 1; j < n-1; j++ {
		row := j * n
		for i := 1; i < n-1; i++ {
			idx := row + i
			div[idx] = -0.5 * (vx[idx+1] - vx[idx-1] + vy[idx+n] - vy[idx-n]) / fn
			p[idx] = 0
		}
	}
	g.SetBoundary(Scalar, div)
	g.SetBoundary(Scalar, p)
	g.linSolve(Scalar, p, div, 1, 4)

	half := 0.5 * fn
	for j := 1; j < n-1; j++ {
		row := j * n
		for i := 1; i < n-1; i++ {
			idx := row + i
			vx[idx] -= half * (p[idx+1] - p[idx-1])
			vy[idx] -= half * (p[idx+n] - p[idx-n])
		}
	}
	g.SetBoundary(VelocityX, vx)
	g.SetBoundary(VelocityY, vy)
}
