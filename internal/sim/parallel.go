package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independent run of an ensemble.
type Job struct {
	X0     State
	Params Params
	Config Config
}

// Ensemble runs independent jobs of the same rule concurrently. Metrics are
// built per job since they carry state.
type Ensemble struct {
	rule       Rule
	newMetrics func() []Metric
	limit      int
}

func NewEnsemble(rule Rule, newMetrics func() []Metric, limit int) *Ensemble {
	return &Ensemble{rule: rule, newMetrics: newMetrics, limit: limit}
}

// Run returns results in job order. The first failing job cancels the rest.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			s := New(e.rule)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			res, err := s.Run(ctx, job.X0, job.Params, job.Config)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
