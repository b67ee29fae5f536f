package integrators

import "github.com/san-kum/whatif/internal/sim"

// Euler is the explicit Euler method: x + dt*f(x, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn sim.Dynamics, x sim.State, p sim.Params, t float64, dt float64) sim.State {
	return x.Add(dyn.Derivative(x, p, t).Scale(dt))
}
