package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/metrics"
)

type Runner struct {
	log       *slog.Logger
	metrics   []metrics.Metric
	observers []Observer
	emitters  []Emitter
}

// NewRunner returns an empty runner. A nil logger discards output.
func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		log:       log,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
		emitters:  make([]Emitter, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }
func (r *Runner) AddEmitter(e Emitter)       { r.emitters = append(r.emitters, e) }

// Run advances g by cfg.Steps ticks. Tick k is the state after k steps;
// tick 0 is always sampled, as is the last completed tick. On cancellation
// the partial result is returned together with the error.
func (r *Runner) Run(ctx context.Context, g *fluid.Grid, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		Samples: make([]Sample, 0, cfg.Steps/cfg.SampleEvery+2),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	elapsed := 0.0
	result.Samples = append(result.Samples, sample(g, 0, elapsed))

	r.log.Debug("run started", "size", g.Size(), "steps", cfg.Steps, "emitters", len(r.emitters))

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		for _, e := range r.emitters {
			if e.Active(i) {
				e.Apply(g)
			}
		}

		dt := g.Params().Dt
		g.Step()
		elapsed += dt
		tick := i + 1

		if cfg.ValidateState && !g.Finite() {
			err := SimError{Tick: tick, Time: elapsed, Message: "invalid state (NaN/Inf)", Wrapped: ErrUnstable}
			result.Errors = append(result.Errors, err)
			r.log.Warn("run diverged", "tick", tick, "time", elapsed)
			break
		}
		result.StepsTaken = tick

		for _, m := range r.metrics {
			m.Observe(g, tick)
		}
		for _, obs := range r.observers {
			obs.OnStep(g, tick)
		}

		if tick%cfg.SampleEvery == 0 || tick == cfg.Steps {
			result.Samples = append(result.Samples, sample(g, tick, elapsed))
		}
	}

	if len(result.Errors) == 0 && result.Final().Tick != result.StepsTaken {
		result.Samples = append(result.Samples, sample(g, result.StepsTaken, elapsed))
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Elapsed = time.Since(start)

	r.log.Info("run finished",
		"steps", result.StepsTaken,
		"samples", len(result.Samples),
		"errors", len(result.Errors),
		"elapsed", result.Elapsed)

	return result, runErr
}

func sample(g *fluid.Grid, tick int, t float64) Sample {
	return Sample{Tick: tick, Time: t, Measurement: metrics.Measure(g)}
}
