package models

import (
	"fmt"

	"github.com/san-kum/whatif/internal/sim"
)

const (
	CarryingCapacity = "carrying_capacity"
	HarvestRate      = "harvest_rate"
)

// LogisticHarvest is logistic growth with a constant harvest:
//
//	dP/dt = r*P*(1 - P/K) - h
type LogisticHarvest struct{}

func NewLogisticHarvest() *LogisticHarvest {
	return &LogisticHarvest{}
}

func (l *LogisticHarvest) StateDim() int { return 1 }

func (l *LogisticHarvest) Derivative(x sim.State, p sim.Params, t float64) sim.State {
	return sim.State{Rate(x[0], p[GrowthRate], p[CarryingCapacity], p[HarvestRate])}
}

// Validate rejects a zero carrying capacity, which would divide by zero.
func (l *LogisticHarvest) Validate(p sim.Params) error {
	if p[CarryingCapacity] == 0 {
		return fmt.Errorf("%w: %s must be non-zero", sim.ErrParameterBounds, CarryingCapacity)
	}
	return nil
}

// Rate is the instantaneous change of a harvested logistic population.
func Rate(pop, growthRate, capacity, harvest float64) float64 {
	return growthRate*pop*(1-pop/capacity) - harvest
}

// NewFishRule advances LogisticHarvest with the given integrator. The
// default time step can be overridden per run with the time_step param.
func NewFishRule(integ sim.Integrator, dt float64) *sim.Integrated {
	return sim.NewIntegrated(NewLogisticHarvest(), integ, dt)
}
