package models

import "github.com/san-kum/whatif/internal/sim"

const (
	LoggingRate        = "logging_rate"
	ConservationFactor = "conservation_factor"
)

// ForestDecay removes a fraction of the remaining cover each period. The
// conservation factor scales the base rate down: 0 has no effect, 1 stops
// the loss entirely.
type ForestDecay struct{}

func NewForestDecay() *ForestDecay {
	return &ForestDecay{}
}

func (f *ForestDecay) Apply(x sim.State, p sim.Params, step int) sim.State {
	return sim.State{x[0] * (1 - EffectiveRate(p[LoggingRate], p[ConservationFactor]))}
}

func (f *ForestDecay) Round(v float64) float64 { return roundTo(v, 1) }

func EffectiveRate(baseRate, mitigation float64) float64 {
	return baseRate * (1 - mitigation)
}
