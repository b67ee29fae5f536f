package models

import "github.com/san-kum/whatif/internal/sim"

const GrowthRate = "growth_rate"

// CompoundGrowth grows a population by a fixed fraction each step:
// next = current * (1 + growth_rate). Emitted values are whole people; the
// running total keeps its fractional part.
type CompoundGrowth struct{}

func NewCompoundGrowth() *CompoundGrowth {
	return &CompoundGrowth{}
}

func (c *CompoundGrowth) Apply(x sim.State, p sim.Params, step int) sim.State {
	return sim.State{x[0] * (1 + p[GrowthRate])}
}

func (c *CompoundGrowth) Round(v float64) float64 { return roundTo(v, 0) }
