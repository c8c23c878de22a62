package fluid

// Step advances the simulation by one tick of Params.Dt. The order below
// is fixed; every tick runs all of it.
func (g *Grid) Step() {
	p := g.params

	g.Diffuse(VelocityX, g.Vx0, g.Vx, p.Viscosity, p.Dt)
	g.Diffuse(VelocityY, g.Vy0, g.Vy, p.Viscosity, p.Dt)

	g.Project(g.Vx0, g.Vy0, g.pressure, g.divergence)

	g.Advect(VelocityX, g.Vx, g.Vx0, g.Vx0, g.Vy0, p.Dt)
	g.Advect(VelocityY, g.Vy, g.Vy0, g.Vx0, g.Vy0, p.Dt)

	g.Project(g.Vx, g.Vy, g.pressure, g.divergence)

	for _, ch := range g.Channels() {
		g.Diffuse(Scalar, g.S, ch, p.Diffusion, p.Dt)
		g.Advect(Scalar, ch, g.S, g.Vx, g.Vy, p.Dt)
	}
}
