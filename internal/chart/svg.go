package chart

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	marginLeft   = 90.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 130.0
	maxXLabels   = 20
	gridLines    = 5
)

var palette = []string{"#F44336", "#3F51B5", "#009688", "#FFC107", "#FF5722", "#9C27B0"}

// RenderSVG writes c as a standalone SVG document.
func RenderSVG(w io.Writer, c *Chart, width, height int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	W, H := float64(width), float64(height)
	plotW := W - marginLeft - marginRight
	plotH := H - marginTop - marginBottom
	lo, hi := c.bounds()

	yPos := func(v float64) float64 {
		return marginTop + plotH - (v-lo)/(hi-lo)*plotH
	}

	n := len(c.XLabels)
	slot := plotW
	if n > 0 {
		slot = plotW / float64(n)
	}
	xPos := func(i int) float64 {
		return marginLeft + slot*(float64(i)+0.5)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%.1f" y="30" font-size="18" text-anchor="middle">%s</text>
`, width, height, width, height, W/2, html.EscapeString(c.Title)))

	// grid and y ticks
	sb.WriteString(`<g stroke="#e0e0e0" font-size="11" fill="#555555">` + "\n")
	for i := 0; i <= gridLines; i++ {
		v := lo + (hi-lo)*float64(i)/gridLines
		y := yPos(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<text x="%.1f" y="%.1f" stroke="none" text-anchor="end">%s</text>
`, marginLeft, y, marginLeft+plotW, y, marginLeft-8, y+4, formatTick(v)))
	}
	sb.WriteString("</g>\n")

	// x labels, thinned to keep them readable
	every := 1
	if n > maxXLabels {
		every = (n + maxXLabels - 1) / maxXLabels
	}
	sb.WriteString(`<g font-size="11" fill="#555555">` + "\n")
	for i, label := range c.XLabels {
		if i%every != 0 {
			continue
		}
		x, y := xPos(i), marginTop+plotH+14
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end" transform="rotate(-45 %.1f %.1f)">%s</text>
`, x, y, x, y, html.EscapeString(label)))
	}
	sb.WriteString("</g>\n")

	// axis titles
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="13" text-anchor="middle">%s</text>
<text x="20" y="%.1f" font-size="13" text-anchor="middle" transform="rotate(-90 20 %.1f)">%s</text>
`, marginLeft+plotW/2, H-45, html.EscapeString(c.XTitle), marginTop+plotH/2, marginTop+plotH/2, html.EscapeString(c.YTitle)))

	switch c.Kind {
	case Bar:
		writeBars(&sb, c, xPos, yPos, slot)
	default:
		writeLines(&sb, c, xPos, yPos)
	}

	// legend
	for i, s := range c.Series {
		x := marginLeft + float64(i%3)*plotW/3
		y := H - 25 + float64(i/3)*16 - float64((len(c.Series)-1)/3)*16
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="12" height="12" fill="%s"/>
<text x="%.1f" y="%.1f" font-size="12">%s</text>
`, x, y-10, color(i), x+18, y, html.EscapeString(s.Label)))
	}

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeLines(sb *strings.Builder, c *Chart, xPos func(int) float64, yPos func(float64) float64) {
	for i, s := range c.Series {
		if len(s.Values) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2" d="M`, color(i)))
		for j, v := range s.Values {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", xPos(j), yPos(v)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", xPos(j), yPos(v)))
			}
		}
		sb.WriteString(`"><title>` + html.EscapeString(s.Label) + "</title></path>\n")
	}
}

func writeBars(sb *strings.Builder, c *Chart, xPos func(int) float64, yPos func(float64) float64, slot float64) {
	if len(c.Series) == 0 {
		return
	}
	barW := slot * 0.8 / float64(len(c.Series))
	zero := yPos(0)
	for i, s := range c.Series {
		sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", color(i)))
		for j, v := range s.Values {
			x := xPos(j) - slot*0.4 + float64(i)*barW
			top := min(yPos(v), zero)
			h := max(yPos(v), zero) - top
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%s: %s</title></rect>
`, x, top, barW, h, html.EscapeString(s.Label), formatTick(v)))
		}
		sb.WriteString("</g>\n")
	}
}

// WriteSVGFile renders c at the default size into path.
func WriteSVGFile(path string, c *Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderSVG(f, c, DefaultWidth, DefaultHeight); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func color(i int) string {
	return palette[i%len(palette)]
}

func formatTick(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
