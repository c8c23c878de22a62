// Package fluid implements a grid-based "stable fluids" solver.
//
// A [Grid] holds a square N×N incompressible velocity field and three
// independent ink channels (R, G, B). Every call to [Grid.Step] runs the
// same fixed pipeline:
//
//   - diffuse velocity with the viscosity
//   - project the diffused velocity (remove divergence)
//   - advect velocity along itself
//   - project again
//   - diffuse and advect each ink channel along the final velocity
//
// The kernels it is built from are exported so callers can compose or test
// them individually:
//
//   - [Grid.IX]: 2D to flat offset, clamped to the grid
//   - [Grid.SetBoundary]: outer wall conditions for one field
//   - [Grid.Diffuse]: implicit smoothing via Gauss–Seidel relaxation
//   - [Grid.Project]: pressure solve and gradient subtraction
//   - [Grid.Advect]: semi-Lagrangian backtrace with bilinear sampling
//
// # Example
//
//	g, _ := fluid.New(128, fluid.DefaultParams())
//	g.AddDensity(64, 64, 1, 0.2, 0)
//	g.AddVelocity(64, 64, 0, -50)
//	for i := 0; i < 60; i++ {
//	    g.Step()
//	}
//
// # Thread Safety
//
// A Grid is NOT safe for concurrent use. Injection, parameter changes and
// snapshots must happen between ticks on the goroutine that calls Step.
//
// # History
//
// The grid keeps no history. [Grid.SaveState] and [Grid.RestoreState] copy
// all eight fields as one unit so an undo/redo manager can sit outside.
package fluid
