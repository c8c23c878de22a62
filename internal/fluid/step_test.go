package fluid_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fluidlab/internal/fluid"
)

// divergenceNorm is the L2 norm of the central divergence over cells at
// least two away from the walls.
func divergenceNorm(g *fluid.Grid) float64 {
	n := g.Size()
	div := make([]float32, n*n)
	g.Divergence(g.Vx, g.Vy, div)
	sum := 0.0
	for j := 2; j < n-2; j++ {
		for i := 2; i < n-2; i++ {
			v := float64(div[g.IX(i, j)])
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

var _ = Describe("Grid", func() {
	Describe("Step", func() {
		It("leaves an all-zero grid at exactly zero", func() {
			g := fluid.MustNew(16, fluid.Params{Dt: 0.1, Diffusion: 0.001, Viscosity: 0.001, Iterations: 4})
			for i := 0; i < 25; i++ {
				g.Step()
			}
			for _, f := range g.SaveState().Fields() {
				for _, v := range f {
					Expect(v).To(BeZero())
				}
			}
		})

		It("spreads a density impulse to its neighbours", func() {
			g := fluid.MustNew(16, fluid.Params{Dt: 0.1, Diffusion: 0.0001, Viscosity: 0, Iterations: 4})
			g.AddDensity(8, 8, 1, 0, 0)
			centre := g.R[g.IX(8, 8)]

			g.Step()

			Expect(g.R[g.IX(8, 8)]).To(BeNumerically("<", centre))
			for _, nb := range [][2]int{{7, 8}, {9, 8}, {8, 7}, {8, 9}} {
				Expect(g.R[g.IX(nb[0], nb[1])]).To(BeNumerically(">", 0), "neighbour %v", nb)
			}
			Expect(g.G).To(HaveEach(BeZero()))
			Expect(g.B).To(HaveEach(BeZero()))
		})

		It("keeps channels independent", func() {
			g := fluid.MustNew(16, fluid.Params{Dt: 0.1, Diffusion: 0.0005, Iterations: 4})
			g.AddDensity(5, 5, 1, 0, 0)
			g.AddDensity(10, 10, 0, 0, 1)
			g.AddVelocity(8, 8, 4, 4)

			for i := 0; i < 5; i++ {
				g.Step()
			}

			Expect(g.G).To(HaveEach(BeZero()))
			Expect(g.R[g.IX(5, 5)]).To(BeNumerically(">", g.B[g.IX(5, 5)]))
			Expect(g.B[g.IX(10, 10)]).To(BeNumerically(">", g.R[g.IX(10, 10)]))
		})

		It("applies parameter changes on the next tick only", func() {
			still := fluid.MustNew(16, fluid.DefaultParams())
			still.AddDensity(8, 8, 1, 1, 1)
			Expect(still.SetParams(fluid.Params{Dt: 0.1, Diffusion: 0.01, Iterations: 4})).To(Succeed())
			still.Step()

			Expect(still.R[still.IX(8, 8)]).To(BeNumerically("<", 1))
		})

		It("moves ink downstream of an injected force", func() {
			g := fluid.MustNew(32, fluid.DefaultParams())
			for y := 14; y <= 18; y++ {
				g.AddDensity(16, y, 1, 1, 1)
				g.AddVelocity(16, y, 20, 0)
			}

			for i := 0; i < 5; i++ {
				g.Step()
			}

			left, right := 0.0, 0.0
			for y := 1; y < 31; y++ {
				for x := 1; x < 16; x++ {
					left += float64(g.R[g.IX(x, y)])
				}
				for x := 17; x < 31; x++ {
					right += float64(g.R[g.IX(x, y)])
				}
			}
			Expect(right).To(BeNumerically(">", left))
			Expect(g.Finite()).To(BeTrue())
		})
	})

	Describe("Project", func() {
		It("removes most of the divergence of a pure outflow", func() {
			g := fluid.MustNew(24, fluid.Params{Dt: 0.1, Iterations: 2000})
			n := g.Size()
			c := float64(n-1) / 2
			const sigma = 3.0
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					dx, dy := float64(x)-c, float64(y)-c
					w := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
					g.Vx[g.IX(x, y)] = float32(dx * w)
					g.Vy[g.IX(x, y)] = float32(dy * w)
				}
			}
			before := divergenceNorm(g)
			Expect(before).To(BeNumerically(">", 1))

			p := make([]float32, n*n)
			div := make([]float32, n*n)
			g.Project(g.Vx, g.Vy, p, div)

			Expect(divergenceNorm(g)).To(BeNumerically("<", before*0.25))
			Expect(g.Finite()).To(BeTrue())
		})

		It("leaves a zero field at zero", func() {
			g := fluid.MustNew(12, fluid.DefaultParams())
			p := make([]float32, 144)
			div := make([]float32, 144)
			for i := range p {
				p[i], div[i] = 3, -3
			}
			g.Project(g.Vx, g.Vy, p, div)
			Expect(g.Vx).To(HaveEach(BeZero()))
			Expect(g.Vy).To(HaveEach(BeZero()))
		})
	})

	Describe("snapshots", func() {
		var g *fluid.Grid

		BeforeEach(func() {
			g = fluid.MustNew(16, fluid.Params{Dt: 0.1, Diffusion: 1e-4, Viscosity: 1e-4, Iterations: 4})
			g.AddDensity(8, 8, 1, 0.5, 0)
			g.AddVelocity(8, 8, 30, -10)
			g.Step()
		})

		It("round-trips bit for bit", func() {
			before := g.SaveState()
			Expect(g.RestoreState(g.SaveState())).To(Succeed())
			Expect(g.SaveState()).To(Equal(before))
		})

		It("supports undo and redo of a tick", func() {
			a := g.SaveState()
			g.Step()
			b := g.SaveState()
			Expect(b).NotTo(Equal(a))

			Expect(g.RestoreState(a)).To(Succeed())
			Expect(g.SaveState()).To(Equal(a))

			Expect(g.RestoreState(b)).To(Succeed())
			Expect(g.SaveState()).To(Equal(b))
		})

		It("replays deterministically from a restored state", func() {
			a := g.SaveState()
			g.Step()
			first := g.SaveState()

			Expect(g.RestoreState(a)).To(Succeed())
			g.Step()
			Expect(g.SaveState()).To(Equal(first))
		})

		It("rejects a snapshot from another resolution", func() {
			other := fluid.MustNew(8, fluid.DefaultParams())
			Expect(g.RestoreState(other.SaveState())).To(MatchError(fluid.ErrDimensionMismatch))
		})
	})
})
