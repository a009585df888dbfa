package scenes

import (
	"fmt"
	"math"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

type telemetry struct {
	label      string
	base, vary float64
	unit       string
}

var dashboard = []telemetry{
	{"Pressure", 0.8, 0.1, "MPa"},
	{"Vibration", 120, 20, "Hz"},
	{"Power", 4.2, 0.5, "kW"},
	{"Flow", 150, 30, "L/min"},
}

var sensorHeights = []float64{300, 150, 0, -150}

// value returns the reading at time t for row i of the dashboard.
func (m telemetry) value(t float64, i int) float64 {
	return m.base + math.Sin(t*2+float64(i))*m.vary
}

// Sensing shows the sensor network inside a see-through tower reporting to
// the AIPC node and its live dashboard.
func Sensing(s canvas.Surface, w, h, t float64) {
	f := newFrame(s, w, h, t)
	k := f.k

	b, anchor := f.tower(true)
	draw.IsoBuilding(s, anchor, b)
	s.SetStrokeColor(draw.Colors.Neon)
	s.SetLineWidth(1.5 * k)
	for _, c := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		lo := b.Corner(anchor, c[0], c[1], 0)
		hi := b.Corner(anchor, c[0], c[1], b.Height())
		s.MoveTo(lo.X, lo.Y)
		s.LineTo(hi.X, hi.Y)
	}
	s.Stroke()

	pipeX := f.u(-200)
	s.SetDash(3*k, 3*k)
	canvas.Line(s, pipeX, f.u(400), pipeX, f.u(-300), draw.Colors.Neon, 6*k)
	s.SetDash()

	for i, y := range sensorHeights {
		pos := f.at(-200, y)
		p := draw.Phase(t*2 + float64(i)*0.5)

		s.SetStrokeColor(canvas.Fade(draw.Colors.Neon, 1-p))
		s.SetLineWidth(3 * k)
		s.DrawCircle(pos.X, pos.Y, f.u(20+p*20))
		s.Stroke()
		canvas.FillCircle(s, pos.X, pos.Y, 8*k, draw.Colors.Neon)

		if f.after(2) {
			pulseX := pos.X + f.u(math.Mod(t*150+float64(i)*45, 150))
			canvas.Line(s, pos.X+8*k, pos.Y, pulseX, pos.Y, draw.Colors.NeonDim, 2*k)
			canvas.FillCircle(s, pulseX, pos.Y, 4*k, draw.Colors.Neon)
		}
	}

	node := f.at(100, 0)
	draw.Glow(s, node.X, node.Y, f.u(75), draw.Colors.Neon, 0.4)
	canvas.FillRect(s, node.X-f.u(45), node.Y-f.u(35), f.u(90), f.u(70), draw.Colors.Slate)
	canvas.StrokeRect(s, node.X-f.u(45), node.Y-f.u(35), f.u(90), f.u(70), draw.Colors.Neon, 2*k)
	f.text("AIPC", 100, 6, canvas.SansBold, 18, draw.Colors.Neon, canvas.AlignCenter)

	if f.after(5) {
		x, y, dw, dh := 250.0, -120.0, 210.0, 240.0
		draw.Panel(s, f.u(x), f.u(y), f.u(dw), f.u(dh), draw.Colors.Neon, 2*k)
		f.text("LIVE TELEMETRY", x+15, y+26, canvas.MonoBold, 13, draw.Colors.Neon, canvas.AlignLeft)

		for i, m := range dashboard {
			rowY := y + 60 + float64(i)*48
			v := m.value(t, i)
			f.text(m.label, x+15, rowY, canvas.Mono, 14, draw.Colors.Steel, canvas.AlignLeft)
			f.text(fmt.Sprintf("%.2f %s", v, m.unit), x+dw-15, rowY, canvas.MonoBold, 18, draw.Colors.White, canvas.AlignRight)
			draw.Bar(s, f.u(x+15), f.u(rowY+10), f.u(dw-30), 5*k, v/(m.base+m.vary), draw.Colors.Neon)
		}
	}

	f.indicator(-560, -400, "SAMPLING RATE", "100Hz")
}
