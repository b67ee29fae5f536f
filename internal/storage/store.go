package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/whatif/internal/chart"
	"github.com/san-kum/whatif/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ScenarioMetadata struct {
	Label   string             `json:"label"`
	Params  map[string]float64 `json:"params"`
	Metrics map[string]float64 `json:"metrics"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Set        string             `json:"set"`
	Model      string             `json:"model"`
	Integrator string             `json:"integrator,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Steps      int                `json:"steps"`
	ChartKind  string             `json:"chart_kind"`
	Title      string             `json:"title"`
	XTitle     string             `json:"x_title"`
	YTitle     string             `json:"y_title"`
	Scenarios  []ScenarioMetadata `json:"scenarios"`
}

// Save writes the report as <base>/<id>/metadata.json plus a series.csv with
// one row per step and one column per scenario.
func (s *Store) Save(report *experiment.Report) (string, error) {
	set := report.Set
	name := set.Name
	if name == "" {
		name = set.Model
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Set:        set.Name,
		Model:      set.Model,
		Integrator: set.Integrator,
		Timestamp:  now,
		Steps:      set.Steps,
		ChartKind:  string(report.Chart.Kind),
		Title:      report.Chart.Title,
		XTitle:     report.Chart.XTitle,
		YTitle:     report.Chart.YTitle,
		Scenarios:  make([]ScenarioMetadata, len(report.Runs)),
	}
	for i, run := range report.Runs {
		meta.Scenarios[i] = ScenarioMetadata{Label: run.Label, Params: run.Params, Metrics: run.Metrics}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), report.Chart); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, c *chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"x"}
	for _, series := range c.Series {
		header = append(header, series.Label)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, label := range c.XLabels {
		row := []string{label}
		for _, series := range c.Series {
			row = append(row, strconv.FormatFloat(series.Values[i], 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadChart rebuilds the chart of a saved run from its metadata and series.
func (s *Store) LoadChart(runID string) (*chart.Chart, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty series file", runID)
	}

	header := records[0]
	xLabels := make([]string, 0, len(records)-1)
	values := make([][]float64, len(header)-1)

	for _, record := range records[1:] {
		xLabels = append(xLabels, record[0])
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: column %q: %w", runID, header[j], err)
			}
			values[j-1] = append(values[j-1], v)
		}
	}

	c := chart.New(chart.Kind(meta.ChartKind), meta.Title, meta.XTitle, meta.YTitle, xLabels)
	for j, label := range header[1:] {
		c.Add(label, values[j])
	}
	return c, nil
}
