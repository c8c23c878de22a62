// Package sim drives a fluid grid headlessly for a fixed number of ticks.
//
// A [Runner] applies scripted [Emitter] input, steps the grid, feeds
// [metrics.Metric] implementations and [Observer] hooks, and keeps periodic
// [Sample] rows for storage or plotting.
//
// # Example
//
//	g, _ := fluid.New(128, fluid.DefaultParams())
//	r := sim.NewRunner(slog.Default())
//	for _, m := range metrics.Standard() {
//		r.AddMetric(m)
//	}
//	r.AddEmitter(sim.Emitter{X: 64, Y: 100, Radius: 4, Color: brush.Red, FY: -40})
//	res, err := r.Run(ctx, g, sim.DefaultConfig())
//
// # Thread Safety
//
// A Runner and the grid it drives belong to one goroutine. [Sweep] runs
// independent jobs in parallel, each with its own grid and runner.
package sim
