package chart

import (
	"github.com/guptarohit/asciigraph"
)

var asciiColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Blue, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan,
}

// RenderASCII plots every series of c on one terminal graph.
func RenderASCII(c *Chart, width, height int) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if len(c.Series) == 0 {
		return "", nil
	}

	data := make([][]float64, 0, len(c.Series))
	legends := make([]string, 0, len(c.Series))
	colors := make([]asciigraph.AnsiColor, 0, len(c.Series))
	for i, s := range c.Series {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, s.Values)
		legends = append(legends, s.Label)
		colors = append(colors, asciiColors[i%len(asciiColors)])
	}
	if len(data) == 0 {
		return "", nil
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(c.Title),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	), nil
}
