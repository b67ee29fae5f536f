package metrics

import (
	"math"

	"github.com/san-kum/whatif/internal/sim"
)

// Final reports the last stored value of component 0.
type Final struct {
	last float64
}

func NewFinal() *Final { return &Final{} }

func (f *Final) Name() string                  { return "final" }
func (f *Final) Observe(x sim.State, step int) { f.last = x[0] }
func (f *Final) Value() float64                { return f.last }
func (f *Final) Reset()                        { f.last = 0 }

// Peak reports the largest value of component 0.
type Peak struct {
	max     float64
	samples int
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(x sim.State, step int) {
	if p.samples == 0 || x[0] > p.max {
		p.max = x[0]
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}

// Trough reports the smallest value of component 0.
type Trough struct {
	min float64
}

func NewTrough() *Trough { return &Trough{min: math.Inf(1)} }

func (t *Trough) Name() string { return "trough" }

func (t *Trough) Observe(x sim.State, step int) {
	t.min = math.Min(t.min, x[0])
}

func (t *Trough) Value() float64 {
	if math.IsInf(t.min, 1) {
		return 0
	}
	return t.min
}

func (t *Trough) Reset() { t.min = math.Inf(1) }
