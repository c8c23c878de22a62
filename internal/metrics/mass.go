// Package metrics observes a fluid grid tick by tick and reduces what it
// sees to a single number per metric.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/san-kum/fluidlab/internal/fluid"
)

type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "r"
	case Green:
		return "g"
	case Blue:
		return "b"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// MassOf is the sum of |density| over one ink channel.
func MassOf(g *fluid.Grid, c Channel) float64 {
	return float64(blas32.Asum(vec(g.Channels()[c])))
}

// Mass tracks the ink in one channel. Its value is the latest observation.
type Mass struct {
	name    string
	channel Channel
	value   float64
}

func NewMass(c Channel) *Mass {
	return &Mass{name: "mass_" + c.String(), channel: c}
}

func (m *Mass) Name() string { return m.name }

func (m *Mass) Observe(g *fluid.Grid, tick int) {
	m.value = MassOf(g, m.channel)
}

func (m *Mass) Value() float64 { return m.value }

func (m *Mass) Reset() { m.value = 0 }
