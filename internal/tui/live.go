// Package tui draws fluid runs in a plain terminal and offers a small
// preset picker.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/metrics"
	"github.com/san-kum/fluidlab/internal/render"
)

const (
	DefaultWidth  = 64
	DefaultHeight = 24

	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a sim.Observer that redraws an ASCII shading of the ink
// field, at most frameRate times per second. A frameRate of zero or less
// redraws every tick.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	width     int
	height    int
	lastFrame time.Time
	canvas    [][]rune
	ansi      bool
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	r := &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		ansi:      true,
	}
	r.Resize(DefaultWidth, DefaultHeight)
	return r
}

// Resize sets the drawing area in characters.
func (r *LiveRenderer) Resize(width, height int) {
	r.width, r.height = max(1, width), max(1, height)
	r.canvas = make([][]rune, r.height)
	for i := range r.canvas {
		r.canvas[i] = make([]rune, r.width)
	}
}

// Plain turns off escape sequences, for writers that are not terminals.
func (r *LiveRenderer) Plain() { r.ansi = false }

func (r *LiveRenderer) OnStep(g *fluid.Grid, tick int) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}
	r.draw(g)
	r.render(g, tick)
}

// draw samples the grid at the centre of each character cell.
func (r *LiveRenderer) draw(g *fluid.Grid) {
	n := g.Size()
	for y := range r.canvas {
		gy := (2*y + 1) * n / (2 * r.height)
		for x := range r.canvas[y] {
			gx := (2*x + 1) * n / (2 * r.width)
			i := g.IX(gx, gy)
			r.canvas[y][x] = render.Shade(g.R[i], g.G[i], g.B[i])
		}
	}
}

func (r *LiveRenderer) render(g *fluid.Grid, tick int) {
	var b strings.Builder
	if r.ansi {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "  %s  tick=%d  %dx%d\n", r.title, tick, g.Size(), g.Size())
	b.WriteString("  +" + strings.Repeat("-", r.width) + "+\n")

	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", r.width) + "+\n")

	m := metrics.Measure(g)
	fmt.Fprintf(&b, "  mass=%.2f (r=%.2f g=%.2f b=%.2f)  ke=%.3f  div=%.2e\n",
		m.TotalMass(), m.MassR, m.MassG, m.MassB, m.Kinetic, m.Divergence)

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() {
	if r.ansi {
		io.WriteString(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.ansi {
		io.WriteString(r.out, showCursor)
	}
}
