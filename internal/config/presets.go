package config

import "sort"

var Presets = map[string]*SetConfig{
	"human-population": {
		Name: "human-population", Model: "compound", Steps: 20,
		Chart: ChartConfig{
			Kind: "line", Title: "Human Population Growth: What-if Scenarios",
			XTitle: "Year", YTitle: "Population", XLabel: "Year %d", XAxis: AxisStep,
		},
		Scenarios: []ScenarioConfig{
			{Label: "Low Growth (2%)", Initial: []float64{1000}, Params: map[string]float64{"growth_rate": 0.02}},
			{Label: "Moderate Growth (5%)", Initial: []float64{1000}, Params: map[string]float64{"growth_rate": 0.05}},
			{Label: "High Growth (10%)", Initial: []float64{1000}, Params: map[string]float64{"growth_rate": 0.10}},
			{Label: "Half Starting Population (5%)", Initial: []float64{500}, Params: map[string]float64{"growth_rate": 0.05}},
		},
	},
	"fish-population": {
		Name: "fish-population", Model: "logistic", Integrator: "euler", Steps: 200,
		Params: map[string]float64{"growth_rate": 0.5, "carrying_capacity": 100, "time_step": 0.1},
		Chart: ChartConfig{
			Kind: "line", Title: "Fish Population: What-if Scenarios",
			XTitle: "Time", YTitle: "Fish Population", XLabel: "%.1f", XAxis: AxisTime,
		},
		Scenarios: []ScenarioConfig{
			{Label: "Moderate Harvest", Initial: []float64{50}, Params: map[string]float64{"harvest_rate": 5}},
			{Label: "Large Harvest", Initial: []float64{50}, Params: map[string]float64{"harvest_rate": 10}},
			{Label: "Low Initial Population", Initial: []float64{30}, Params: map[string]float64{"harvest_rate": 5}},
		},
	},
	"forest-fire": {
		Name: "forest-fire", Model: "firerisk", Steps: 30,
		Chart: ChartConfig{
			Kind: "line", Title: "Forest Fire Risk Over Time: What-if Scenarios",
			XTitle: "Day", YTitle: "Fire Risk Score (0 = Safe, 100 = Extreme)", XLabel: "Day %d", XAxis: AxisStep,
		},
		Scenarios: []ScenarioConfig{
			{Label: "Heatwave Conditions", Params: map[string]float64{
				"base_temperature": 35, "base_soil_moisture": 30, "base_wind_speed": 40,
				"base_humidity": 20, "temp_increase": 0.8, "moisture_loss": 1.5,
			}},
			{Label: "Moderate Conditions", Params: map[string]float64{
				"base_temperature": 22, "base_soil_moisture": 60, "base_wind_speed": 15,
				"base_humidity": 55, "temp_increase": 0.3, "moisture_loss": 0.5,
			}},
		},
	},
	"forest-logging": {
		Name: "forest-logging", Model: "decay", Steps: 30,
		Chart: ChartConfig{
			Kind: "bar", Title: "Forest Cover Over Time: Impact of Illegal Logging",
			XTitle: "Month", YTitle: "Forest Cover (hectares)", XLabel: "Month %d", XAxis: AxisStep,
		},
		Scenarios: []ScenarioConfig{
			{Label: "No Conservation", Initial: []float64{10000}, Params: map[string]float64{"logging_rate": 0.05, "conservation_factor": 0.0}},
			{Label: "Active Conservation", Initial: []float64{10000}, Params: map[string]float64{"logging_rate": 0.05, "conservation_factor": 0.6}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *SetConfig {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
