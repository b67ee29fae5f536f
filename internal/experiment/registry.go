package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/whatif/internal/integrators"
	"github.com/san-kum/whatif/internal/metrics"
	"github.com/san-kum/whatif/internal/models"
	"github.com/san-kum/whatif/internal/sim"
)

var ErrUnknownModel = errors.New("unknown model")

// ModelSpec is everything needed to run one named model.
type ModelSpec struct {
	Description string
	Rule        func(integrator string) (sim.Rule, error)
	Clamp       sim.Clamp
	Metrics     func() []sim.Metric
}

type Registry struct {
	models map[string]ModelSpec
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]ModelSpec)}

	r.Register("compound", ModelSpec{
		Description: "compound growth, yearly interest on the population",
		Rule:        func(string) (sim.Rule, error) { return models.NewCompoundGrowth(), nil },
		Metrics: func() []sim.Metric {
			return []sim.Metric{metrics.NewFinal(), metrics.NewPeak()}
		},
	})
	r.Register("logistic", ModelSpec{
		Description: "logistic growth with constant harvest, integrated",
		Rule: func(name string) (sim.Rule, error) {
			integ, err := integrators.ByName(name)
			if err != nil {
				return nil, err
			}
			return models.NewFishRule(integ, 0.1), nil
		},
		Clamp: sim.FloorAt(0),
		Metrics: func() []sim.Metric {
			return []sim.Metric{metrics.NewFinal(), metrics.NewPeak(), metrics.NewTrough(), metrics.NewCrossing(0, metrics.Falling)}
		},
	})
	r.Register("firerisk", ModelSpec{
		Description: "fire risk index under temperature and rainfall",
		Rule:        func(string) (sim.Rule, error) { return models.NewFireRisk(), nil },
		Clamp:       sim.Between(0, 100),
		Metrics: func() []sim.Metric {
			return []sim.Metric{metrics.NewFinal(), metrics.NewPeak(), metrics.NewCrossing(100, metrics.Rising)}
		},
	})
	r.Register("decay", ModelSpec{
		Description: "forest cover under logging and regrowth",
		Rule:        func(string) (sim.Rule, error) { return models.NewForestDecay(), nil },
		Metrics: func() []sim.Metric {
			return []sim.Metric{metrics.NewFinal(), metrics.NewTrough()}
		},
	})

	return r
}

// Register adds a model under name, replacing any model already there.
func (r *Registry) Register(name string, spec ModelSpec) {
	r.models[name] = spec
}

func (r *Registry) GetModel(name string) (ModelSpec, error) {
	spec, ok := r.models[name]
	if !ok {
		return ModelSpec{}, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return spec, nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
