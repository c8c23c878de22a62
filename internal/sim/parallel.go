package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fluidlab/internal/fluid"
)

// Job is one independent run inside a Sweep.
type Job struct {
	Name   string
	Grid   *fluid.Grid
	Runner *Runner
	Config Config
}

// Sweep runs jobs concurrently, at most limit at a time (limit <= 0 means
// no limit). Results are returned in job order. The first failing job
// cancels the rest.
func Sweep(ctx context.Context, jobs []Job, limit int) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, job := range jobs {
		eg.Go(func() error {
			res, err := job.Runner.Run(ctx, job.Grid, job.Config)
			results[i] = res
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
