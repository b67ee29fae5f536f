package sim

import "errors"

var (
	// ErrNonFinite indicates an update produced NaN or Inf.
	ErrNonFinite = errors.New("sim: non-finite value produced")

	// ErrParameterBounds indicates a parameter value the rule cannot evaluate.
	ErrParameterBounds = errors.New("sim: parameter out of valid bounds")

	// ErrNegativeSteps indicates a run configured with fewer than zero steps.
	ErrNegativeSteps = errors.New("sim: step count must not be negative")

	// ErrEmptyState indicates a run started without any state components.
	ErrEmptyState = errors.New("sim: initial state is empty")

	// ErrStateDim indicates an initial state whose size does not match the dynamics.
	ErrStateDim = errors.New("sim: initial state has the wrong number of components")
)
