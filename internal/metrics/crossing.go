package metrics

import (
	"fmt"

	"github.com/san-kum/whatif/internal/sim"
)

type Direction int

const (
	Rising Direction = iota
	Falling
)

// Crossing reports the 1-based step at which component 0 first reaches the
// threshold: at or above it when Rising, at or below it when Falling.
// The value is 0 when the threshold is never reached.
type Crossing struct {
	name      string
	threshold float64
	dir       Direction
	step      int
}

func NewCrossing(threshold float64, dir Direction) *Crossing {
	name := fmt.Sprintf("reaches_%g", threshold)
	if dir == Falling {
		name = fmt.Sprintf("falls_to_%g", threshold)
	}
	return &Crossing{name: name, threshold: threshold, dir: dir}
}

func (c *Crossing) Name() string {
	return c.name
}

func (c *Crossing) Observe(x sim.State, step int) {
	if c.step != 0 {
		return
	}
	v := x[0]
	if (c.dir == Rising && v >= c.threshold) || (c.dir == Falling && v <= c.threshold) {
		c.step = step + 1
	}
}

func (c *Crossing) Value() float64 {
	return float64(c.step)
}

func (c *Crossing) Reset() {
	c.step = 0
}
