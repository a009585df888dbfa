package scenes

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

// EnergyAt is the energy use, in percent of the legacy system, shown by the
// results scene at time t. It falls from 100 to 55 between t=3 and t=6.
func EnergyAt(t float64) float64 {
	p := math.Max(0, math.Min(1, (t-3)/3))
	return 100 - p*45
}

// Results shows the controlled system: water reaching every floor, the
// energy saving and the flat pressure band.
func Results(s canvas.Surface, w, h, t float64) {
	f := newFrame(s, w, h, t)
	k := f.k

	b, anchor := f.tower(false)
	draw.IsoBuilding(s, anchor, b)

	pipeX := -200.0
	canvas.Line(s, f.u(pipeX), f.u(400), f.u(pipeX), f.u(-300), canvas.Fade(draw.Colors.Neon, 0.5), 8*k)

	var riser []gg.Point
	for y := 400.0; y >= -300; y -= 15 {
		riser = append(riser, f.at(pipeX, y))
	}
	draw.ParticleFlow(s, riser, t, draw.Colors.Neon, k)

	for floor := 1; floor <= 30; floor += 3 {
		y := 400 - float64(floor)*22
		outlet := f.at(pipeX+45, y)
		canvas.Line(s, f.u(pipeX), outlet.Y, outlet.X, outlet.Y, draw.Colors.NeonDim, 2*k)
		canvas.FillCircle(s, outlet.X, outlet.Y, 5*k, draw.Colors.Neon)
		drop := draw.Phase(t*3 + float64(floor)*0.1)
		canvas.FillCircle(s, outlet.X+f.u(drop*60), outlet.Y, 3*k, canvas.Fade(draw.Colors.Neon, 1-drop))
	}

	ex, ey, ew, eh := 180.0, -140.0, 150.0, 180.0
	draw.Panel(s, f.u(ex), f.u(ey), f.u(ew), f.u(eh), draw.Colors.Neon, 2*k)
	f.text("Energy use", ex+ew/2, ey+28, canvas.SansBold, 20, draw.Colors.White, canvas.AlignCenter)

	canvas.FillRect(s, f.u(ex+20), f.u(ey+50), f.u(45), f.u(45), draw.Colors.Warning)
	f.text("100%", ex+42.5, ey+112, canvas.MonoBold, 13, draw.Colors.Warning, canvas.AlignCenter)

	cur := EnergyAt(t)
	barH := 45 * cur / 100
	bottom := ey + 150
	canvas.FillRect(s, f.u(ex+85), f.u(bottom-barH), f.u(45), f.u(barH), draw.Colors.Success)
	f.text(fmt.Sprintf("%.0f%%", cur), ex+107.5, ey+170, canvas.MonoBold, 13, draw.Colors.Success, canvas.AlignCenter)

	sx, sy, sw, sh := 180.0, 80.0, 180.0, 120.0
	draw.Panel(s, f.u(sx), f.u(sy), f.u(sw), f.u(sh), draw.Colors.Neon, 2*k)
	f.text("Pressure stability", sx+sw/2, sy+28, canvas.SansBold, 16, draw.Colors.White, canvas.AlignCenter)
	canvas.FillRect(s, f.u(sx+15), f.u(sy+55), f.u(sw-30), f.u(40), canvas.Fade(draw.Colors.Neon, 0.2))
	canvas.StrokeRect(s, f.u(sx+15), f.u(sy+55), f.u(sw-30), f.u(40), draw.Colors.Neon, k)
	s.SetStrokeColor(draw.Colors.Success)
	s.SetLineWidth(2 * k)
	for u := 0.0; u <= sw-30; u += 3 {
		y := sy + 75 + draw.MPCWave(u, t)*0.3
		if u == 0 {
			s.MoveTo(f.u(sx+15+u), f.u(y))
		} else {
			s.LineTo(f.u(sx+15+u), f.u(y))
		}
	}
	s.Stroke()

	f.indicator(-560, 320, "SYSTEM RESPONSE", "<1s")
	f.indicator(-240, 320, "ENERGY SAVED", "45%")

	if sc := f.ramp(10, 0.5); sc > 0 {
		canvas.WithState(s, func() {
			s.Translate(f.u(0), f.u(-330))
			s.Scale(sc, sc)
			draw.Panel(s, f.u(-300), f.u(-45), f.u(600), f.u(90), draw.Colors.Neon, 3*k)
			f.text("DeepControl AIPC", 0, -8, canvas.SansBold, 34, draw.Colors.Neon, canvas.AlignCenter)
			f.text("Making every drop of water smarter", 0, 28, canvas.Sans, 22, draw.Colors.White, canvas.AlignCenter)
		})
	}
}
