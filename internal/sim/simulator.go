package sim

import (
	"context"
	"fmt"
)

type Simulator struct {
	rule      Rule
	metrics   []Metric
	observers []Observer
}

func New(rule Rule) *Simulator {
	return &Simulator{
		rule:      rule,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, p Params, cfg Config) (*Result, error) {
	if err := s.validate(x0, p, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Series:  make([]float64, 0, cfg.Steps),
		States:  make([]State, 0, cfg.Steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	rounder, _ := s.rule.(Rounder)
	x := x0.Clone()

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next := s.rule.Apply(x, p, i)
		if cfg.Clamp != nil {
			for j := range next {
				next[j] = cfg.Clamp(next[j])
			}
		}

		if !next.IsValid() {
			return nil, SimError{Step: i, Message: "update produced NaN/Inf", Err: ErrNonFinite}
		}

		x = next
		emitted := x.Clone()
		if rounder != nil {
			emitted[0] = rounder.Round(emitted[0])
		}

		result.Series = append(result.Series, emitted[0])
		result.States = append(result.States, x.Clone())

		// metrics summarize the series as reported, not the raw state
		for _, m := range s.metrics {
			m.Observe(emitted, i)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, i)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate(x0 State, p Params, cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeSteps, cfg.Steps)
	}
	if len(x0) == 0 {
		return ErrEmptyState
	}
	if d, ok := s.rule.(interface{ StateDim() int }); ok && len(x0) != d.StateDim() {
		return fmt.Errorf("%w: got %d components, want %d", ErrStateDim, len(x0), d.StateDim())
	}
	if v, ok := s.rule.(Validator); ok {
		if err := v.Validate(p); err != nil {
			return err
		}
	}
	return nil
}
