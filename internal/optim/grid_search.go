// Package optim sweeps scenario parameters over a grid and ranks the
// resulting runs by one metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/experiment"
	"github.com/san-kum/whatif/internal/logging"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Axis is one swept parameter and the values it takes.
type Axis struct {
	Name   string
	Values []float64
}

// ParseAxis reads "name=from:to:step" or "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return Axis{}, fmt.Errorf("axis %q: want name=from:to:step or name=v1,v2", s)
	}

	if parts := strings.Split(list, ":"); len(parts) == 3 {
		nums := make([]float64, 3)
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return Axis{}, fmt.Errorf("axis %q: %w", s, err)
			}
			nums[i] = v
		}
		from, to, step := nums[0], nums[1], nums[2]
		if step <= 0 || to < from {
			return Axis{}, fmt.Errorf("axis %q: need from <= to and step > 0", s)
		}
		n := int(math.Floor((to-from)/step+1e-9)) + 1
		values := make([]float64, n)
		for i := range values {
			values[i] = from + float64(i)*step
		}
		return Axis{Name: name, Values: values}, nil
	}

	var values []float64
	for _, p := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %q: %w", s, err)
		}
		values = append(values, v)
	}
	return Axis{Name: name, Values: values}, nil
}

// Point is one grid cell and the metric its run produced.
type Point struct {
	Label  string
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	axes     []Axis
	metric   string
	maximize bool
	logger   *slog.Logger
}

func NewGridSearch(axes []Axis, metric string, maximize bool, logger *slog.Logger) *GridSearch {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GridSearch{axes: axes, metric: metric, maximize: maximize, logger: logger}
}

// Search runs scenario idx of base once per grid point and returns every
// point in grid order along with the best one.
func (g *GridSearch) Search(ctx context.Context, base *config.SetConfig, idx int, registry *experiment.Registry) ([]Point, Point, error) {
	if idx < 0 || idx >= len(base.Scenarios) {
		return nil, Point{}, fmt.Errorf("scenario %d out of range (set has %d)", idx, len(base.Scenarios))
	}

	combos := make([]map[string]float64, 0)
	g.searchRecursive(0, make(map[string]float64), &combos)

	cfg := base.Clone()
	scenario := cfg.Scenarios[idx]
	cfg.Scenarios = make([]config.ScenarioConfig, len(combos))
	for i, combo := range combos {
		l := label(combo)
		if l == "" {
			l = scenario.Label
		}
		params := make(map[string]float64, len(scenario.Params)+len(combo))
		for k, v := range scenario.Params {
			params[k] = v
		}
		for k, v := range combo {
			params[k] = v
		}
		cfg.Scenarios[i] = config.ScenarioConfig{
			Label:   l,
			Initial: scenario.Initial,
			Params:  params,
		}
	}

	g.logger.Debug("grid search", "set", cfg.Name, "points", len(combos), "metric", g.metric)

	report, err := experiment.New(cfg, registry, g.logger).Run(ctx)
	if err != nil {
		return nil, Point{}, err
	}

	points := make([]Point, len(report.Runs))
	best := -1
	for i, run := range report.Runs {
		val, ok := run.Metrics[g.metric]
		if !ok {
			return nil, Point{}, fmt.Errorf("%w %q for model %s", ErrUnknownMetric, g.metric, cfg.Model)
		}
		points[i] = Point{Label: run.Label, Params: combos[i], Value: val}
		if best < 0 || g.better(val, points[best].Value) {
			best = i
		}
	}

	if best < 0 {
		return points, Point{}, nil
	}
	return points, points[best], nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.maximize {
		return a > b
	}
	return a < b
}

func (g *GridSearch) searchRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.axes) {
		*out = append(*out, current)
		return
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[axis.Name] = val

		g.searchRecursive(depth+1, next, out)
	}
}

func label(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, params[k])
	}
	return strings.Join(parts, " ")
}
