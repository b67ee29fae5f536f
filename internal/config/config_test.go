package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "compound" {
		t.Errorf("expected model compound, got %s", cfg.Model)
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Chart.XAxis != AxisStep {
		t.Errorf("expected step axis, got %s", cfg.Chart.XAxis)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fish-population")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Steps != 200 {
		t.Errorf("expected 200 steps, got %d", cfg.Steps)
	}
	if cfg.Params["carrying_capacity"] != 100 {
		t.Errorf("expected carrying capacity 100, got %f", cfg.Params["carrying_capacity"])
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	cfg := GetPreset("human-population")
	cfg.Steps = 3
	cfg.Scenarios[0].Params["growth_rate"] = 9

	again := GetPreset("human-population")
	if again.Steps != 20 || again.Scenarios[0].Params["growth_rate"] != 0.02 {
		t.Error("preset was mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"fish-population", "forest-fire", "forest-logging", "human-population"}
	if len(presets) != len(want) {
		t.Fatalf("expected %d presets, got %v", len(want), presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, presets[i], want[i])
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SetConfig)
	}{
		{"no model", func(c *SetConfig) { c.Model = "" }},
		{"negative steps", func(c *SetConfig) { c.Steps = -1 }},
		{"no scenarios", func(c *SetConfig) { c.Scenarios = nil }},
		{"unlabelled scenario", func(c *SetConfig) { c.Scenarios[0].Label = "" }},
		{"bad axis", func(c *SetConfig) { c.Chart.XAxis = "month" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("human-population")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestScenarioParams(t *testing.T) {
	cfg := GetPreset("fish-population")
	p := cfg.ScenarioParams(1)

	if p["harvest_rate"] != 10 || p["growth_rate"] != 0.5 || p["time_step"] != 0.1 {
		t.Errorf("unexpected merged params %v", p)
	}

	cfg.Scenarios[1].Params["growth_rate"] = 0.9
	if got := cfg.ScenarioParams(1)["growth_rate"]; got != 0.9 {
		t.Errorf("scenario params should win, got %v", got)
	}
}

func TestXLabels(t *testing.T) {
	years := GetPreset("human-population").XLabels(0)
	if len(years) != 20 || years[0] != "Year 1" || years[19] != "Year 20" {
		t.Errorf("unexpected year labels %v", years)
	}

	times := GetPreset("fish-population").XLabels(0.1)
	if len(times) != 200 || times[0] != "0.1" || times[199] != "20.0" {
		t.Errorf("unexpected time labels: first=%s last=%s n=%d", times[0], times[len(times)-1], len(times))
	}
}

func TestTimeStep(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SetConfig)
		def    float64
		want   float64
	}{
		{"set level", func(c *SetConfig) {}, 0.5, 0.1},
		{"model default", func(c *SetConfig) { delete(c.Params, "time_step") }, 0.25, 0.25},
		{"every scenario", func(c *SetConfig) {
			delete(c.Params, "time_step")
			for i := range c.Scenarios {
				c.Scenarios[i].Params["time_step"] = 0.2
			}
		}, 0.1, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("fish-population")
			tt.mutate(cfg)
			got, err := cfg.TimeStep(tt.def)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TimeStep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeStepMismatch(t *testing.T) {
	cfg := GetPreset("fish-population")
	cfg.Scenarios[2].Params["time_step"] = 0.5

	if _, err := cfg.TimeStep(0.1); err == nil {
		t.Error("expected error for scenarios with different time steps")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fire.yaml")

	if err := Save(path, GetPreset("forest-fire")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != "firerisk" || cfg.Steps != 30 || len(cfg.Scenarios) != 2 {
		t.Errorf("round trip lost data: %+v", cfg)
	}
	if cfg.Scenarios[0].Params["moisture_loss"] != 1.5 {
		t.Errorf("scenario params lost: %v", cfg.Scenarios[0].Params)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	doc := `
scenarios:
  - label: Baseline
    initial: [100]
    params:
      growth_rate: 0.03
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != DefaultModel || cfg.Steps != DefaultSteps || cfg.Chart.XLabel != DefaultXLabel {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("steps: [not an int"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("model: decay\n"), 0644)
	if _, err := Load(empty); err == nil || !strings.Contains(err.Error(), "scenario") {
		t.Errorf("expected scenario validation error, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
