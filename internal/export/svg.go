package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/deepshow/internal/scene"
)

var sceneColors = []string{"#00f0ff", "#a855f7", "#00ff88", "#ff9900", "#00d4ff", "#ff0055"}

// TimelineSVG draws the catalog as a row of bars, each as wide as its
// share of the total duration, with a five second ruler below.
func TimelineSVG(c *scene.Catalog, width, height int) string {
	if c == nil || c.Len() == 0 || width <= 0 || height <= 0 {
		return ""
	}

	w, h := float64(width), float64(height)
	pad := 20.0
	barY, barH := pad, h*0.5
	scale := (w - 2*pad) / c.Total()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#0a1628"/>
`, width, height, width, height))

	for i, s := range c.Scenes() {
		x := pad + c.Offset(s.ID)*scale
		bw := s.Duration * scale
		color := sceneColors[i%len(sceneColors)]
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"><title>%s</title></rect>
`, x, barY, bw, barH, color, color, html.EscapeString(s.Title)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="14" font-weight="bold" text-anchor="middle">%d</text>
`, x+bw/2, barY+barH/2, color, s.ID))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#94a3b8" font-size="10" text-anchor="middle">%gs</text>
`, x+bw/2, barY+barH/2+16, s.Duration))
	}

	axisY := barY + barH + 12
	sb.WriteString(fmt.Sprintf(`<g stroke="#334155" fill="#64748b" font-size="9">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, pad, axisY, w-pad, axisY))
	for t := 0.0; t <= c.Total()+1e-9; t += 5 {
		x := pad + t*scale
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/><text x="%.1f" y="%.1f" stroke="none" text-anchor="middle">%g</text>
`, x, axisY, x, axisY+4, x, axisY+14, t))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Trace is one line of a SignalSVG chart.
type Trace struct {
	Times  []float64
	Values []float64
	Color  string
}

// SignalSVG plots traces on shared axes with 10% padding around their
// bounds. Traces with fewer than two points are skipped.
func SignalSVG(width, height int, traces ...Trace) string {
	var minX, maxX, minY, maxY float64
	first := true
	for _, tr := range traces {
		n := min(len(tr.Times), len(tr.Values))
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			x, y := tr.Times[i], tr.Values[i]
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if first {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, tr := range traces {
		n := min(len(tr.Times), len(tr.Values))
		if n < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, tr.Color))
		for i := 0; i < n; i++ {
			x := (tr.Times[i] - minX) / rangeX * float64(width)
			y := float64(height) - (tr.Values[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
