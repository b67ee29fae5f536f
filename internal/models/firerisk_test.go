package models

import (
	"math"
	"testing"

	"github.com/san-kum/whatif/internal/sim"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		c    Conditions
		want float64
	}{
		{"heatwave base", Conditions{Temperature: 35, SoilMoisture: 30, WindSpeed: 40, Humidity: 20}, 72},
		{"moderate base", Conditions{Temperature: 22, SoilMoisture: 60, WindSpeed: 15, Humidity: 55}, 41.5},
		{"clamped high", Conditions{Temperature: 200, SoilMoisture: 50, WindSpeed: 10, Humidity: 50}, 100},
		{"clamped low", Conditions{Temperature: -100, SoilMoisture: 100, WindSpeed: 0, Humidity: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.c); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreClampIsExact(t *testing.T) {
	if got := Score(Conditions{Temperature: 200}); got != 100 {
		t.Errorf("expected exactly 100, got %v", got)
	}
	if got := Score(Conditions{Temperature: -500, SoilMoisture: 100, Humidity: 100}); got != 0 {
		t.Errorf("expected exactly 0, got %v", got)
	}
}

func TestDriftedConditions(t *testing.T) {
	p := sim.Params{
		BaseTemperature:  35,
		BaseSoilMoisture: 30,
		BaseWindSpeed:    40,
		BaseHumidity:     20,
		TempIncrease:     0.8,
		MoistureLoss:     1.5,
	}

	c := DriftedConditions(p, 10)
	if math.Abs(c.Temperature-43) > 1e-9 || math.Abs(c.SoilMoisture-15) > 1e-9 {
		t.Errorf("unexpected drift at step 10: %+v", c)
	}
	if c.WindSpeed != 40 || c.Humidity != 20 {
		t.Errorf("wind and humidity must stay constant: %+v", c)
	}

	if c := DriftedConditions(p, 29); c.SoilMoisture != 0 {
		t.Errorf("soil moisture must floor at zero, got %v", c.SoilMoisture)
	}
}

func TestDriftedConditionsDefaults(t *testing.T) {
	p := sim.Params{BaseTemperature: 20, BaseSoilMoisture: 50}

	c := DriftedConditions(p, 4)
	if c.Temperature != 22 || c.SoilMoisture != 46 {
		t.Errorf("default drift not applied: %+v", c)
	}
}

func TestFireRiskSeries(t *testing.T) {
	p := sim.Params{
		BaseTemperature:  35,
		BaseSoilMoisture: 30,
		BaseWindSpeed:    40,
		BaseHumidity:     20,
		TempIncrease:     0.8,
		MoistureLoss:     1.5,
	}

	got := run(t, NewFireRisk(), 0, p, sim.Config{Steps: 30, Clamp: sim.Between(0, 100)})
	if len(got) != 30 {
		t.Fatalf("expected 30 days, got %d", len(got))
	}
	if got[0] != 72 {
		t.Errorf("day 1: expected 72, got %v", got[0])
	}
	// 43 + 25.5 + 8 + 8
	if got[10] != 84.5 {
		t.Errorf("day 11: expected 84.5, got %v", got[10])
	}
	if got[29] != 100 {
		t.Errorf("day 30: expected 100, got %v", got[29])
	}
}
