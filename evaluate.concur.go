package threepg

import (
	"context"
	"fmt"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"golang.org/x/sync/errgroup"
)

// Job one independent stand
type Job struct {
	Name    string
	Config  *config.Config
	Climate *forcing.Table
	Sink    Sink // optional
}

// RunBatch runs every job, at most workers at a time (workers <= 0: no limit).
// Results are indexed like jobs. The first failure cancels the remaining runs.
func RunBatch(ctx context.Context, jobs []Job, workers int, opts ...Option) ([][]Record, error) {
	out := make([][]Record, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			o := append(append([]Option{}, opts...), withName(j.Name))
			if j.Sink != nil {
				o = append(o, WithSink(j.Sink))
			}
			recs, err := New(j.Config, j.Climate, o...).Run(gctx)
			if err != nil {
				return fmt.Errorf("stand %q: %w", j.Name, err)
			}
			out[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
