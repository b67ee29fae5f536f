// Package chart collects labelled series for one what-if chart and renders
// them as SVG files or terminal plots.
package chart

import (
	"errors"
	"fmt"
)

var ErrLengthMismatch = errors.New("chart: series length does not match x labels")

type Kind string

const (
	Line Kind = "line"
	Bar  Kind = "bar"
)

type Series struct {
	Label  string
	Values []float64
}

type Chart struct {
	Kind    Kind
	Title   string
	XTitle  string
	YTitle  string
	XLabels []string
	Series  []Series
}

func New(kind Kind, title, xTitle, yTitle string, xLabels []string) *Chart {
	if kind == "" {
		kind = Line
	}
	return &Chart{Kind: kind, Title: title, XTitle: xTitle, YTitle: yTitle, XLabels: xLabels}
}

func (c *Chart) Add(label string, values []float64) {
	c.Series = append(c.Series, Series{Label: label, Values: values})
}

// Validate checks that every series has one value per x label.
func (c *Chart) Validate() error {
	if c.Kind != Line && c.Kind != Bar {
		return fmt.Errorf("chart: unknown kind %q", c.Kind)
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.XLabels) {
			return fmt.Errorf("%w: %q has %d values, %d labels", ErrLengthMismatch, s.Label, len(s.Values), len(c.XLabels))
		}
	}
	return nil
}

// bounds returns the y range to draw, always including zero.
func (c *Chart) bounds() (lo, hi float64) {
	first := true
	for _, s := range c.Series {
		for _, v := range s.Values {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	lo = min(lo, 0)
	hi = max(hi, 0)
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}
