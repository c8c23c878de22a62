package brush

import (
	"math"

	"github.com/san-kum/fluidlab/internal/fluid"
)

// Stroke follows one press-drag-release gesture over a view of Width×Height
// units that displays the whole grid.
type Stroke struct {
	Width, Height float64

	// OnStart runs before the first stamp of every gesture. Front-ends use
	// it to record an undo point.
	OnStart func()

	dragging     bool
	prevX, prevY float64
}

func NewStroke(width, height float64) *Stroke {
	return &Stroke{Width: width, Height: height}
}

func (s *Stroke) Dragging() bool { return s.dragging }

// Begin starts a gesture at view point (x, y) and stamps without force.
func (s *Stroke) Begin(g *fluid.Grid, b Brush, x, y float64) {
	if s.OnStart != nil {
		s.OnStart()
	}
	s.dragging = true
	s.prevX, s.prevY = x, y
	s.apply(g, b, x, y, 0, 0)
}

// Move continues the gesture. It is a no-op unless a gesture is active.
func (s *Stroke) Move(g *fluid.Grid, b Brush, x, y float64) {
	if !s.dragging {
		return
	}
	dx, dy := x-s.prevX, y-s.prevY
	s.apply(g, b, x, y, dx, dy)
	s.prevX, s.prevY = x, y
}

func (s *Stroke) End() {
	s.dragging = false
}

// Cell maps a view point to grid coordinates. ok is false outside the grid.
func (s *Stroke) Cell(n int, x, y float64) (cx, cy int, ok bool) {
	if s.Width <= 0 || s.Height <= 0 {
		return 0, 0, false
	}
	cx = int(math.Floor(x * float64(n) / s.Width))
	cy = int(math.Floor(y * float64(n) / s.Height))
	if cx < 0 || cx >= n || cy < 0 || cy >= n {
		return 0, 0, false
	}
	return cx, cy, true
}

// Radius converts a brush size in view units to grid cells, at least one.
func (s *Stroke) Radius(n, size int) int {
	if s.Width <= 0 {
		return 1
	}
	r := int(math.Floor(float64(size) * float64(n) / s.Width))
	return max(1, r)
}

func (s *Stroke) apply(g *fluid.Grid, b Brush, x, y, dx, dy float64) {
	n := g.Size()
	cx, cy, ok := s.Cell(n, x, y)
	if !ok {
		return
	}
	b.Stamp(g, cx, cy, s.Radius(n, b.Size), float32(dx*ForceScale), float32(dy*ForceScale))
}
