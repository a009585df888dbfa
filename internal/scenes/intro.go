package scenes

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

var stackLayers = []string{
	"Physical systems",
	"Sensing & actuation",
	"Network transport",
	"Edge computing",
	"Cloud services",
}

// Intro presents the AIPC controller in the pump room and the layered stack
// it spans.
func Intro(s canvas.Surface, w, h, t float64) {
	f := newFrame(s, w, h, t)
	k := f.k

	roomX, roomY, roomW, roomH := -225.0, -330.0, 450.0, 260.0
	draw.Panel(s, f.u(roomX), f.u(roomY), f.u(roomW), f.u(roomH), draw.Colors.Neon, 2*k)
	f.text("PUMP ROOM", roomX+12, roomY+24, canvas.MonoBold, 13, draw.Colors.NeonDim, canvas.AlignLeft)

	dev := f.at(0, -200)
	devW, devH := f.u(120), f.u(90)

	breath := draw.Phase(t * 0.5)
	glow := 0.5 - math.Cos(breath*2*math.Pi)*0.5
	s.SetFillGradient(canvas.RadialGradient(dev.X, dev.Y, 0, f.u(90+glow*30),
		canvas.Stop{Offset: 0, Color: canvas.Fade(draw.Colors.Neon, 0.3+0.2*glow)},
		canvas.Stop{Offset: 1, Color: canvas.Fade(draw.Colors.Neon, 0)},
	))
	s.DrawCircle(dev.X, dev.Y, f.u(120))
	s.Fill()

	s.SetFillGradient(canvas.LinearGradient(dev.X-devW/2, dev.Y-devH/2, dev.X+devW/2, dev.Y+devH/2,
		canvas.Stop{Offset: 0, Color: gg.Hex("#e2e8f0")},
		canvas.Stop{Offset: 0.5, Color: draw.Colors.Steel},
		canvas.Stop{Offset: 1, Color: gg.Hex("#64748b")},
	))
	s.DrawRectangle(dev.X-devW/2, dev.Y-devH/2, devW, devH)
	s.FillPreserve()
	s.SetStrokeColor(draw.Colors.Neon)
	s.SetLineWidth(2 * k)
	s.Stroke()

	for i := 0; i < 3; i++ {
		p := draw.Phase(t*2 + float64(i)*0.3)
		a := 0.5 + math.Sin(p*2*math.Pi)*0.5
		canvas.FillCircle(s, dev.X-devW/2+f.u(18+float64(i)*14), dev.Y-devH/2+f.u(14), 4*k,
			canvas.Fade(draw.Colors.Success, a))
	}

	ink := gg.Hex("#0f172a")
	f.text("DeepControl", 0, -200+8, canvas.SansBold, 20, ink, canvas.AlignCenter)
	f.text("AIPC", 0, -200+33, canvas.Sans, 16, ink, canvas.AlignCenter)

	layerY, layerH, gap := roomY+roomH+20, 44.0, 52.0
	for i, name := range stackLayers {
		x, y, lw := -300.0, layerY+float64(i)*gap, 600.0
		p := f.ramp(float64(i)*0.5, 0.8)

		canvas.FillRect(s, f.u(x), f.u(y), f.u(lw), f.u(layerH), canvas.Fade(draw.Colors.Neon, 0.1+0.2*p))
		canvas.StrokeRect(s, f.u(x), f.u(y), f.u(lw), f.u(layerH), canvas.Fade(draw.Colors.Neon, p), 1.5*k)

		s.SetStrokeColor(canvas.Fade(draw.Colors.Neon, 0.4*p))
		s.SetLineWidth(k)
		for j := 0; j < 3; j++ {
			ly := f.u(y + 9 + float64(j)*13)
			s.MoveTo(f.u(x+lw*0.55), ly)
			s.LineTo(f.u(x+lw*0.55+lw*0.4*p), ly)
		}
		s.Stroke()

		f.text(name, x+20, y+28, canvas.SansBold, 16, canvas.Fade(draw.Colors.White, 0.3+0.7*p), canvas.AlignLeft)

		if p > 0 && p < 1 {
			canvas.FillRect(s, f.u(x+lw*p-2), f.u(y), 4*k, f.u(layerH), draw.Colors.Neon)
		}
	}

	if f.after(8) {
		sensor := f.at(roomX+roomW-75, roomY+150)
		draw.PulseRing(s, sensor, t, draw.Colors.Success, k)
		f.text("SENSOR", roomX+roomW-75, roomY+150+28, canvas.Mono, 11, draw.Colors.Success, canvas.AlignCenter)

		if f.after(10) {
			f.text("<10ms", roomX+roomW-75, roomY+150-35, canvas.MonoBold, 16, draw.Colors.White, canvas.AlignCenter)
			scan := f.u(math.Mod(t*50, 120))
			canvas.Line(s, sensor.X-f.u(60), sensor.Y+f.u(45), sensor.X-f.u(60)+scan, sensor.Y+f.u(45), draw.Colors.Success, 2*k)
		}
	}

	if f.after(12) {
		up := f.u(roomY - 45)
		s.SetDash(8*k, 6*k)
		s.SetStrokeColor(draw.Colors.Neon)
		s.SetLineWidth(2 * k)
		s.MoveTo(dev.X, dev.Y-devH/2)
		s.LineTo(dev.X, up)
		s.LineTo(f.u(120), up)
		s.Stroke()
		s.SetDash()
		draw.Cloud(s, f.u(180), up, draw.Colors.Neon, k)
		f.text("CLOUD", 180+32, roomY-45+5, canvas.MonoBold, 12, draw.Colors.White, canvas.AlignCenter)
	}
}
