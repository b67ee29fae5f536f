package integrators

import (
	"fmt"

	"github.com/san-kum/whatif/internal/sim"
)

// ByName returns the integrator registered under name. An empty name selects Euler.
func ByName(name string) (sim.Integrator, error) {
	switch name {
	case "", "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
