package scenes

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

var (
	lowFloors  = []float64{270, 236, 202, 168, 134}
	highFloors = []struct {
		y     float64
		label string
	}{{-60, "F20"}, {-130, "F25"}, {-200, "F30"}}
)

// PainPoints shows the legacy booster set: one pump, water gushing on the
// low floors while the top of the tower starves.
func PainPoints(s canvas.Surface, w, h, t float64) {
	f := newFrame(s, w, h, t)
	k := f.k

	b, anchor := f.tower(false)
	draw.IsoBuilding(s, anchor, b)

	pumpX, pumpY := f.u(-120), f.u(330)
	size := f.u(45 + math.Sin(t*5)*8)

	s.SetFillGradient(canvas.RadialGradient(pumpX, pumpY, 0, size,
		canvas.Stop{Offset: 0, Color: gg.Hex("#ff6666")},
		canvas.Stop{Offset: 0.5, Color: draw.Colors.Warning},
		canvas.Stop{Offset: 1, Color: gg.Hex("#660000")},
	))
	s.DrawCircle(pumpX, pumpY, size)
	s.Fill()

	canvas.WithState(s, func() {
		s.Translate(pumpX, pumpY)
		s.Rotate(t * 10)
		s.SetStrokeColor(draw.Colors.White)
		s.SetLineWidth(3 * k)
		for i := 0; i < 4; i++ {
			s.MoveTo(0, 0)
			s.LineTo(size*0.7, 0)
			s.Rotate(math.Pi / 2)
		}
		s.Stroke()
	})
	f.text("PUMP", -120, 330+70, canvas.MonoBold, 14, draw.Colors.Warning, canvas.AlignCenter)

	riserX := pumpX
	canvas.Line(s, riserX, pumpY-size, riserX, f.u(-240), draw.Colors.Neon, 10*k)

	for i, y := range lowFloors {
		fy := f.u(y)
		iconX := riserX + f.u(75)
		canvas.StrokeRect(s, iconX, fy-f.u(20), f.u(40), f.u(40), draw.Colors.Neon, 2*k)
		label := "SHWR"
		if i%2 == 1 {
			label = "WASH"
		}
		f.text(label, -120+75+20, y+5, canvas.Mono, 10, draw.Colors.Neon, canvas.AlignCenter)
		f.text(fmt.Sprintf("F%d", i+1), -120-20, y+5, canvas.Mono, 11, draw.Colors.Steel, canvas.AlignRight)

		if f.after(2) {
			canvas.Line(s, riserX, fy, iconX, fy, canvas.Fade(draw.Colors.Neon, 0.5), 14*k)
			draw.ChaosFlow(s, gg.Pt(riserX, fy), gg.Pt(iconX, fy), t+float64(i), k)
		}
	}

	for _, hf := range highFloors {
		fy := f.u(hf.y)
		canvas.Line(s, riserX, fy, riserX+f.u(60), fy, draw.Colors.Muted, 3*k)
		f.text(hf.label, -120-20, hf.y+5, canvas.Mono, 11, draw.Colors.Steel, canvas.AlignRight)
		if f.after(3) {
			drip := fy + f.u(math.Mod(t*25, 30))
			canvas.FillCircle(s, riserX+f.u(60), drip, 5*k, draw.Colors.NeonDim)
		}
	}

	draw.ChartBox(s, draw.Chart{
		X: f.u(130), Y: f.u(-80), W: f.u(260), H: f.u(150),
		Color: draw.Colors.Warning,
		Wave:  draw.ImbalanceWave,
	}, t, k)
	f.text("Hydraulic imbalance: pressure swings", 260, 100, canvas.Sans, 14, draw.Colors.Warning, canvas.AlignCenter)

	if f.after(5) {
		f.indicator(-560, -400, "RESPONSE DELAY", "2-3s")
		f.indicator(150, 150, "ENERGY USE", "145%")
	}
}
