package sim

import "fmt"

// TimeStepParam overrides Integrated.Dt when present in the run's Params.
const TimeStepParam = "time_step"

// Integrated advances a continuous-time Dynamics by one time step per step.
// The step index maps to time t = step*dt.
type Integrated struct {
	Dyn        Dynamics
	Integrator Integrator
	Dt         float64
}

func NewIntegrated(dyn Dynamics, integ Integrator, dt float64) *Integrated {
	return &Integrated{Dyn: dyn, Integrator: integ, Dt: dt}
}

func (r *Integrated) Apply(x State, p Params, step int) State {
	dt := p.Get(TimeStepParam, r.Dt)
	return r.Integrator.Step(r.Dyn, x, p, float64(step)*dt, dt)
}

func (r *Integrated) Validate(p Params) error {
	if dt := p.Get(TimeStepParam, r.Dt); dt <= 0 {
		return fmt.Errorf("%w: time step must be positive, got %f", ErrParameterBounds, dt)
	}
	if v, ok := r.Dyn.(Validator); ok {
		return v.Validate(p)
	}
	return nil
}

func (r *Integrated) StateDim() int { return r.Dyn.StateDim() }

// Round forwards to the dynamics when it rounds its output.
func (r *Integrated) Round(v float64) float64 {
	if rd, ok := r.Dyn.(Rounder); ok {
		return rd.Round(v)
	}
	return v
}
