package sim

import (
	"fmt"
	"math"
)

// State is the evolving value of a run. Component 0 is the charted value.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// Params holds the named coefficients of a run. Values are not range checked
// unless the rule implements Validator.
type Params map[string]float64

func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Rule advances a state by one step. Implementations must be pure.
type Rule interface {
	Apply(x State, p Params, step int) State
}

type RuleFunc func(x State, p Params, step int) State

func (f RuleFunc) Apply(x State, p Params, step int) State { return f(x, p, step) }

// Rounder rounds emitted series values. The evolving state is not rounded.
type Rounder interface {
	Round(v float64) float64
}

// Validator rejects parameter sets a rule cannot evaluate.
type Validator interface {
	Validate(p Params) error
}

// Dynamics is a continuous-time rate function dX/dt = f(X, p, t).
type Dynamics interface {
	Derivative(x State, p Params, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, p Params, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, step int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, step int)
}

// Clamp restricts a produced value before it is stored.
type Clamp func(float64) float64

func FloorAt(min float64) Clamp {
	return func(v float64) float64 { return math.Max(v, min) }
}

func Between(lo, hi float64) Clamp {
	return func(v float64) float64 { return math.Min(math.Max(v, lo), hi) }
}

type Config struct {
	Steps int
	Clamp Clamp
}

type Result struct {
	Series  []float64
	States  []State
	Metrics map[string]float64
}

type SimError struct {
	Step    int
	Message string
	Err     error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}

func (e SimError) Unwrap() error { return e.Err }
