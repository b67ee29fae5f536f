package integrators

import "github.com/san-kum/whatif/internal/sim"

// RK4 is the classic fourth-order Runge-Kutta method. It keeps no scratch
// state so one value can serve concurrent runs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn sim.Dynamics, x sim.State, p sim.Params, t, dt float64) sim.State {
	n := len(x)
	scratch := make(sim.State, n)

	k1 := dyn.Derivative(x, p, t)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := dyn.Derivative(scratch, p, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := dyn.Derivative(scratch, p, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*k3[i]
	}
	k4 := dyn.Derivative(scratch, p, t+dt)

	result := make(sim.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
