package metrics

import "github.com/san-kum/fluidlab/internal/fluid"

// Metric folds per-tick observations of a grid into one value.
type Metric interface {
	Name() string
	Observe(g *fluid.Grid, tick int)
	Value() float64
	Reset()
}

// Measurement is a one-shot summary of a grid.
type Measurement struct {
	MassR      float64 `json:"mass_r" csv:"mass_r"`
	MassG      float64 `json:"mass_g" csv:"mass_g"`
	MassB      float64 `json:"mass_b" csv:"mass_b"`
	Kinetic    float64 `json:"kinetic" csv:"kinetic"`
	Divergence float64 `json:"divergence" csv:"divergence"`
}

func (m Measurement) TotalMass() float64 {
	return m.MassR + m.MassG + m.MassB
}

func Measure(g *fluid.Grid) Measurement {
	return Measurement{
		MassR:      MassOf(g, Red),
		MassG:      MassOf(g, Green),
		MassB:      MassOf(g, Blue),
		Kinetic:    KineticEnergyOf(g),
		Divergence: MaxDivergenceOf(g, nil),
	}
}

// DefaultSpeedLimit is the velocity component above which Stability counts
// a tick as unstable.
const DefaultSpeedLimit = 1e4

// Standard is the metric set attached to headless runs.
func Standard() []Metric {
	return []Metric{
		NewMass(Red),
		NewMass(Green),
		NewMass(Blue),
		NewKineticEnergy(),
		NewMaxDivergence(),
		NewStability(DefaultSpeedLimit),
	}
}
