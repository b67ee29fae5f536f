// Package sim provides the stepwise simulator used by every what-if model.
//
// A run applies one [Rule] a fixed number of times to an evolving [State]
// and collects one value per step:
//
//   - [Rule]: pure update (state, params, step) -> next state
//   - [Integrated]: turns a continuous-time [Dynamics] into a [Rule]
//   - [Clamp]: restricts each stored value (for example a floor at zero)
//   - [Simulator]: orchestrates a run and its metrics
//
// # Example
//
//	s := sim.New(models.NewCompoundGrowth())
//	res, _ := s.Run(ctx, sim.State{1000}, sim.Params{"growth_rate": 0.05}, sim.Config{Steps: 20})
//
// The initial state is never part of the produced series.
package sim
