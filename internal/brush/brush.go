// Package brush turns pointer input into ink and force on a fluid grid.
package brush

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/fluidlab/internal/fluid"
)

const (
	// InkAmount scales a colour before it is added to each covered cell.
	InkAmount = 2.0
	// EraseFade multiplies density under the eraser on every application.
	EraseFade = 0.5
	// ForceScale converts pointer movement in view units into velocity.
	ForceScale = 100.0
	// DefaultSize is the brush radius in view units.
	DefaultSize = 5
)

var ErrInvalidColor = errors.New("brush: invalid colour")

type Tool int

const (
	Paint Tool = iota
	Erase
)

func (t Tool) String() string {
	if t == Erase {
		return "eraser"
	}
	return "brush"
}

// ParseTool accepts "brush", "paint", "eraser" and "erase".
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "brush", "paint":
		return Paint, nil
	case "eraser", "erase":
		return Erase, nil
	}
	return Paint, fmt.Errorf("brush: unknown tool %q", s)
}

func (t Tool) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Color is an ink colour with channels in [0, 1].
type Color struct {
	R, G, B float32
}

var (
	Red   = Color{1, 0, 0}
	White = Color{1, 1, 1}
)

// ParseHex parses "#rrggbb" (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Brush is the current tool selection.
type Brush struct {
	Tool  Tool  `yaml:"tool" json:"tool"`
	Color Color `yaml:"color" json:"color"`
	Size  int   `yaml:"size" json:"size"`
}

func Default() Brush {
	return Brush{Tool: Paint, Color: Red, Size: DefaultSize}
}

// Stamp applies one brush hit centred on cell (x, y): the force (fx, fy) at
// the centre, then ink or fading over the disk of the given radius. Cells of
// the disk outside the grid are skipped.
func (b Brush) Stamp(g *fluid.Grid, x, y, radius int, fx, fy float32) {
	n := g.Size()
	if x < 0 || x >= n || y < 0 || y >= n {
		return
	}
	g.AddVelocity(x, y, fx, fy)

	r2 := radius * radius
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			if i*i+j*j > r2 {
				continue
			}
			cx, cy := x+i, y+j
			if cx < 0 || cx >= n || cy < 0 || cy >= n {
				continue
			}
			switch b.Tool {
			case Paint:
				g.AddDensity(cx, cy, b.Color.R*InkAmount, b.Color.G*InkAmount, b.Color.B*InkAmount)
			case Erase:
				g.ScaleDensity(cx, cy, EraseFade)
			}
		}
	}
}
