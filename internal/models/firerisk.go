package models

import (
	"math"

	"github.com/san-kum/whatif/internal/sim"
)

const (
	BaseTemperature  = "base_temperature"
	BaseSoilMoisture = "base_soil_moisture"
	BaseWindSpeed    = "base_wind_speed"
	BaseHumidity     = "base_humidity"
	TempIncrease     = "temp_increase"
	MoistureLoss     = "moisture_loss"

	DefaultTempIncrease = 0.5
	DefaultMoistureLoss = 1.0
)

// Conditions are the weather inputs of the fire risk score. Moisture and
// humidity are percentages, wind is km/h, temperature is °C.
type Conditions struct {
	Temperature  float64
	SoilMoisture float64
	WindSpeed    float64
	Humidity     float64
}

// Score weighs the conditions into a 0-100 fire risk.
func Score(c Conditions) float64 {
	temp := c.Temperature * 1.0
	moisture := (100 - c.SoilMoisture) * 0.3
	wind := c.WindSpeed * 0.2
	humidity := (100 - c.Humidity) * 0.1

	return math.Min(math.Max(temp+moisture+wind+humidity, 0), 100)
}

// FireRisk scores drifting conditions: each step the temperature rises by
// temp_increase and soil moisture falls by moisture_loss (not below zero).
// Wind and humidity stay at their base values. The incoming state is ignored.
type FireRisk struct{}

func NewFireRisk() *FireRisk {
	return &FireRisk{}
}

func (f *FireRisk) Apply(x sim.State, p sim.Params, step int) sim.State {
	return sim.State{Score(DriftedConditions(p, step))}
}

func (f *FireRisk) Round(v float64) float64 { return roundTo(v, 1) }

// DriftedConditions returns the conditions in effect at step.
func DriftedConditions(p sim.Params, step int) Conditions {
	s := float64(step)
	return Conditions{
		Temperature:  p[BaseTemperature] + s*p.Get(TempIncrease, DefaultTempIncrease),
		SoilMoisture: math.Max(p[BaseSoilMoisture]-s*p.Get(MoistureLoss, DefaultMoistureLoss), 0),
		WindSpeed:    p[BaseWindSpeed],
		Humidity:     p[BaseHumidity],
	}
}
