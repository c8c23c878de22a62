package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/render"
)

// Each terminal cell stands for a block of cellPx×cellPy view pixels and
// shows two grid samples stacked with the upper half block.
const (
	cellPx    = 8
	cellPy    = 16
	halfBlock = "▀"
)

// Canvas maps between terminal cells, view pixels and grid cells.
type Canvas struct {
	Width, Height int
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Width: max(1, w), Height: max(1, h)}
}

// ViewSize is the canvas extent in view pixels, the unit brush sizes and
// strokes are measured in.
func (c *Canvas) ViewSize() (w, h float64) {
	return float64(c.Width * cellPx), float64(c.Height * cellPy)
}

// ViewPoint is the view pixel at the centre of terminal cell (col, row).
func (c *Canvas) ViewPoint(col, row int) (x, y float64) {
	return float64(col*cellPx) + cellPx/2, float64(row*cellPy) + cellPy/2
}

// Contains reports whether (col, row) is on the canvas.
func (c *Canvas) Contains(col, row int) bool {
	return col >= 0 && col < c.Width && row >= 0 && row < c.Height
}

// sample returns the grid cell shown by the top (half 0) or bottom
// (half 1) of terminal cell (col, row).
func (c *Canvas) sample(n, col, row, half int) (x, y int) {
	w, h := c.ViewSize()
	px := float64(col*cellPx) + cellPx/2
	py := float64(row*cellPy) + float64(half*cellPy/2) + cellPy/4
	return int(px * float64(n) / w), int(py * float64(n) / h)
}

// Render draws the ink fields. Cells without ink take the background colour.
func (c *Canvas) Render(g *fluid.Grid, bg lipgloss.Color) string {
	n := g.Size()
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		var runTop, runBottom lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(runTop).Background(runBottom).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			tx, ty := c.sample(n, col, row, 0)
			bx, by := c.sample(n, col, row, 1)
			top := cellColor(render.At(g, tx, ty), bg)
			bottom := cellColor(render.At(g, bx, by), bg)
			if top != runTop || bottom != runBottom {
				flush()
				runTop, runBottom = top, bottom
			}
			run.WriteString(halfBlock)
		}
		flush()
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellColor(c color.RGBA, bg lipgloss.Color) lipgloss.Color {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return bg
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
