package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/whatif/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps      = 20
	DefaultModel      = "compound"
	DefaultIntegrator = "euler"
	DefaultXLabel     = "Step %d"
)

// Axis values used to build x labels.
const (
	AxisStep = "step"
	AxisTime = "time"
)

// SetConfig describes one chart's worth of what-if scenarios that share a
// model and step count.
type SetConfig struct {
	Name       string             `yaml:"name"`
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator,omitempty"`
	Steps      int                `yaml:"steps"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Chart      ChartConfig        `yaml:"chart"`
	Scenarios  []ScenarioConfig   `yaml:"scenarios"`
}

type ChartConfig struct {
	Kind   string `yaml:"kind"`
	Title  string `yaml:"title"`
	XTitle string `yaml:"x_title"`
	YTitle string `yaml:"y_title"`
	// XLabel is a printf pattern fed the 1-based step (axis "step") or the
	// elapsed time step*time_step (axis "time").
	XLabel string `yaml:"x_label"`
	XAxis  string `yaml:"x_axis,omitempty"`
}

type ScenarioConfig struct {
	Label   string             `yaml:"label"`
	Initial []float64          `yaml:"initial,flow"`
	Params  map[string]float64 `yaml:"params"`
}

func DefaultConfig() *SetConfig {
	return &SetConfig{
		Model:      DefaultModel,
		Integrator: DefaultIntegrator,
		Steps:      DefaultSteps,
		Chart: ChartConfig{
			Kind:   "line",
			XLabel: DefaultXLabel,
			XAxis:  AxisStep,
		},
	}
}

func Load(path string) (*SetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *SetConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *SetConfig) Validate() error {
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	if len(c.Scenarios) == 0 {
		return errors.New("at least one scenario is required")
	}
	for i, s := range c.Scenarios {
		if s.Label == "" {
			return fmt.Errorf("scenario %d has no label", i)
		}
	}
	if c.Chart.XAxis != "" && c.Chart.XAxis != AxisStep && c.Chart.XAxis != AxisTime {
		return fmt.Errorf("unknown x axis %q", c.Chart.XAxis)
	}
	return nil
}

// ScenarioParams merges the set's shared params with the scenario's own;
// scenario values win.
func (c *SetConfig) ScenarioParams(i int) map[string]float64 {
	merged := make(map[string]float64, len(c.Params)+len(c.Scenarios[i].Params))
	for k, v := range c.Params {
		merged[k] = v
	}
	for k, v := range c.Scenarios[i].Params {
		merged[k] = v
	}
	return merged
}

// TimeStep resolves the time step every scenario runs with: its own
// time_step, else the set's, else def. Scenarios that end up with different
// steps cannot share a time axis and are rejected.
func (c *SetConfig) TimeStep(def float64) (float64, error) {
	dt := def
	for i := range c.Scenarios {
		v, ok := c.ScenarioParams(i)[sim.TimeStepParam]
		if !ok {
			v = def
		}
		if i > 0 && v != dt {
			return 0, fmt.Errorf("scenario %q runs with time_step %g, others with %g: a time axis needs one step", c.Scenarios[i].Label, v, dt)
		}
		dt = v
	}
	return dt, nil
}

// XLabels builds one label per step. dt is only used on a time axis.
func (c *SetConfig) XLabels(dt float64) []string {
	pattern := c.Chart.XLabel
	if pattern == "" {
		pattern = DefaultXLabel
	}

	labels := make([]string, c.Steps)
	for i := range labels {
		if c.Chart.XAxis == AxisTime {
			labels[i] = fmt.Sprintf(pattern, float64(i+1)*dt)
		} else {
			labels[i] = fmt.Sprintf(pattern, i+1)
		}
	}
	return labels
}

func (c *SetConfig) Clone() *SetConfig {
	cp := *c
	cp.Params = cloneParams(c.Params)
	cp.Scenarios = make([]ScenarioConfig, len(c.Scenarios))
	for i, s := range c.Scenarios {
		cp.Scenarios[i] = ScenarioConfig{
			Label:   s.Label,
			Initial: append([]float64(nil), s.Initial...),
			Params:  cloneParams(s.Params),
		}
	}
	return &cp
}

func cloneParams(p map[string]float64) map[string]float64 {
	if p == nil {
		return nil
	}
	c := make(map[string]float64, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
