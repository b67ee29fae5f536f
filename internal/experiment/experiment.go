package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/whatif/internal/chart"
	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/logging"
	"github.com/san-kum/whatif/internal/sim"
)

// Run is the outcome of one scenario.
type Run struct {
	Label   string
	Params  sim.Params
	Series  []float64
	Metrics map[string]float64
}

// Report holds every scenario of a set plus the chart built from them.
type Report struct {
	Set     *config.SetConfig
	Runs    []Run
	Chart   *chart.Chart
	Elapsed time.Duration
}

type Experiment struct {
	cfg      *config.SetConfig
	registry *Registry
	logger   *slog.Logger
	workers  int
}

func New(cfg *config.SetConfig, registry *Registry, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger, workers: 4}
}

// SetWorkers bounds how many scenarios run at once. Zero means no limit.
func (e *Experiment) SetWorkers(n int) { e.workers = n }

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	spec, err := e.registry.GetModel(e.cfg.Model)
	if err != nil {
		return nil, err
	}

	rule, err := spec.Rule(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	var dt float64
	if e.cfg.Chart.XAxis == config.AxisTime {
		if dt, err = e.cfg.TimeStep(defaultStep(rule)); err != nil {
			return nil, fmt.Errorf("set %s: %w", e.cfg.Name, err)
		}
	}

	jobs := make([]sim.Job, len(e.cfg.Scenarios))
	for i, s := range e.cfg.Scenarios {
		x0 := sim.State(append([]float64(nil), s.Initial...))
		if len(x0) == 0 {
			x0 = sim.State{0}
		}
		jobs[i] = sim.Job{
			X0:     x0,
			Params: sim.Params(e.cfg.ScenarioParams(i)),
			Config: sim.Config{Steps: e.cfg.Steps, Clamp: spec.Clamp},
		}
	}

	e.logger.Debug("running set", "set", e.cfg.Name, "model", e.cfg.Model, "scenarios", len(jobs), "steps", e.cfg.Steps)
	start := time.Now()

	results, err := sim.NewEnsemble(rule, spec.Metrics, e.workers).Run(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", e.cfg.Name, err)
	}

	report := &Report{
		Set:     e.cfg,
		Runs:    make([]Run, len(results)),
		Chart:   chart.New(chart.Kind(e.cfg.Chart.Kind), e.cfg.Chart.Title, e.cfg.Chart.XTitle, e.cfg.Chart.YTitle, e.cfg.XLabels(dt)),
		Elapsed: time.Since(start),
	}

	for i, res := range results {
		label := e.cfg.Scenarios[i].Label
		report.Runs[i] = Run{
			Label:   label,
			Params:  jobs[i].Params,
			Series:  res.Series,
			Metrics: res.Metrics,
		}
		report.Chart.Add(label, res.Series)
	}

	e.logger.Info("set finished", "set", e.cfg.Name, "scenarios", len(results), "elapsed", report.Elapsed)
	return report, nil
}

// defaultStep is the time step a rule advances by when no time_step param
// overrides it. Discrete rules step by one.
func defaultStep(rule sim.Rule) float64 {
	if r, ok := rule.(*sim.Integrated); ok {
		return r.Dt
	}
	return 1
}
