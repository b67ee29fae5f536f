package models

import (
	"testing"

	"github.com/san-kum/whatif/internal/sim"
)

func TestForestDecay(t *testing.T) {
	tests := []struct {
		name         string
		conservation float64
		want         float64
	}{
		{"no conservation", 0.0, 9500.0},
		{"active conservation", 0.6, 9800.0},
		{"logging stopped", 1.0, 10000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sim.Params{LoggingRate: 0.05, ConservationFactor: tt.conservation}
			got := run(t, NewForestDecay(), 10000, p, sim.Config{Steps: 1})
			if got[0] != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got[0])
			}
		})
	}
}

func TestForestDecayOneDecimal(t *testing.T) {
	p := sim.Params{LoggingRate: 0.1, ConservationFactor: 0.5}
	got := run(t, NewForestDecay(), 1000, p, sim.Config{Steps: 3})

	// 950, 902.5, 857.375
	want := []float64{950, 902.5, 857.4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("period %d: got %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestEffectiveRate(t *testing.T) {
	if got := EffectiveRate(0.05, 0.4); got < 0.0299999 || got > 0.0300001 {
		t.Errorf("expected 0.03, got %v", got)
	}
}
