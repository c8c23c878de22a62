package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/fluidlab/internal/brush"
	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/metrics"
)

// Observer is called after every completed tick.
type Observer interface {
	OnStep(g *fluid.Grid, tick int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(g *fluid.Grid, tick int)

func (f ObserverFunc) OnStep(g *fluid.Grid, tick int) { f(g, tick) }

type Config struct {
	Steps         int  `yaml:"steps" json:"steps"`
	SampleEvery   int  `yaml:"sample_every" json:"sample_every"`
	ValidateState bool `yaml:"validate_state" json:"validate_state"`
}

func DefaultConfig() Config {
	return Config{
		Steps:         300,
		SampleEvery:   10,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample_every must be positive, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	return nil
}

// Emitter is scripted brush input: every Every ticks in [Start, Stop) it
// stamps Color and the force (FX, FY) at cell (X, Y). Stop <= 0 means the
// emitter never stops.
type Emitter struct {
	X      int         `yaml:"x" json:"x"`
	Y      int         `yaml:"y" json:"y"`
	Radius int         `yaml:"radius" json:"radius"`
	Color  brush.Color `yaml:"color" json:"color"`
	FX     float32     `yaml:"fx" json:"fx"`
	FY     float32     `yaml:"fy" json:"fy"`
	Start  int         `yaml:"start" json:"start"`
	Stop   int         `yaml:"stop" json:"stop"`
	Every  int         `yaml:"every" json:"every"`
}

// Active reports whether the emitter fires before the given tick.
func (e Emitter) Active(tick int) bool {
	if tick < e.Start || (e.Stop > 0 && tick >= e.Stop) {
		return false
	}
	every := max(1, e.Every)
	return (tick-e.Start)%every == 0
}

func (e Emitter) Apply(g *fluid.Grid) {
	b := brush.Brush{Tool: brush.Paint, Color: e.Color}
	b.Stamp(g, e.X, e.Y, max(1, e.Radius), e.FX, e.FY)
}

// Sample is one row of a run's time series.
type Sample struct {
	Tick int     `json:"tick" csv:"tick"`
	Time float64 `json:"time" csv:"time"`
	metrics.Measurement
}

type Result struct {
	Samples    []Sample           `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
	Errors     []error            `json:"-"`
	Elapsed    time.Duration      `json:"elapsed"`
}

// Final is the last sample, or the zero Sample for an empty result.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}
