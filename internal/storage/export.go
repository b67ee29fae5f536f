package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/whatif/internal/chart"
)

type ExportSeries struct {
	Label   string             `json:"label"`
	Params  map[string]float64 `json:"params,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Values  []float64          `json:"values"`
}

type ExportData struct {
	ID      string         `json:"id"`
	Set     string         `json:"set"`
	Model   string         `json:"model"`
	Steps   int            `json:"steps"`
	Title   string         `json:"title"`
	XLabels []string       `json:"x_labels"`
	Series  []ExportSeries `json:"series"`
}

// ExportJSON writes a saved run with its series inlined. Scenario metadata is
// matched to series by label.
func ExportJSON(w io.Writer, meta *RunMetadata, c *chart.Chart) error {
	byLabel := make(map[string]ScenarioMetadata, len(meta.Scenarios))
	for _, s := range meta.Scenarios {
		byLabel[s.Label] = s
	}

	data := ExportData{
		ID:      meta.ID,
		Set:     meta.Set,
		Model:   meta.Model,
		Steps:   meta.Steps,
		Title:   meta.Title,
		XLabels: c.XLabels,
		Series:  make([]ExportSeries, len(c.Series)),
	}
	for i, s := range c.Series {
		sc := byLabel[s.Label]
		data.Series[i] = ExportSeries{Label: s.Label, Params: sc.Params, Metrics: sc.Metrics, Values: s.Values}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Export loads runID and writes it as JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	c, err := s.LoadChart(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, c)
}
