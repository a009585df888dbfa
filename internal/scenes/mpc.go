package scenes

import (
	"fmt"
	"math"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

var valveOpenings = []float64{15, 42, 80}

// Predictive shows the MPC core coordinating several valves, with the PID
// and MPC responses side by side.
func Predictive(s canvas.Surface, w, h, t float64) {
	f := newFrame(s, w, h, t)
	k := f.k

	core := f.at(0, 40)
	draw.Glow(s, core.X, core.Y, f.u(120), draw.Colors.Purple, 0.45)
	canvas.FillCircle(s, core.X, core.Y, f.u(75), draw.Colors.Slate)
	s.SetStrokeColor(draw.Colors.Purple)
	s.SetLineWidth(3 * k)
	s.DrawCircle(core.X, core.Y, f.u(75))
	s.Stroke()

	s.SetStrokeColor(draw.Colors.Neon)
	s.SetLineWidth(2 * k)
	for i := 0; i < 8; i++ {
		a := float64(i)*math.Pi/4 + t*0.6
		s.MoveTo(core.X+math.Cos(a)*f.u(45), core.Y+math.Sin(a)*f.u(45))
		s.LineTo(core.X+math.Cos(a+0.3)*f.u(65), core.Y+math.Sin(a+0.3)*f.u(65))
	}
	s.Stroke()
	f.text("MPC", 0, 40+10, canvas.SansBold, 28, draw.Colors.White, canvas.AlignCenter)

	draw.ChartBox(s, draw.Chart{
		X: f.u(-400), Y: f.u(130), W: f.u(180), H: f.u(150),
		Title: "PID (oscillating)", Color: draw.Colors.Warning, Wave: draw.PIDWave,
		Amplitude: 0.8,
	}, t, k)
	draw.ChartBox(s, draw.Chart{
		X: f.u(220), Y: f.u(130), W: f.u(180), H: f.u(150),
		Title: "MPC (smooth)", Color: draw.Colors.Success, Wave: draw.MPCWave,
		Forecast: true,
	}, t, k)

	if f.after(8) {
		vy := -200.0
		f.text("Multi-variable coordination", 0, vy-75, canvas.SansBold, 18, draw.Colors.Neon, canvas.AlignCenter)
		for i, open := range valveOpenings {
			vx := -150 + float64(i)*150
			v := f.at(vx, vy)
			canvas.FillCircle(s, v.X, v.Y, f.u(35), draw.Colors.Slate)
			s.SetStrokeColor(draw.Colors.Neon)
			s.SetLineWidth(2 * k)
			s.DrawCircle(v.X, v.Y, f.u(35))
			s.Stroke()

			a := open / 100 * math.Pi / 2
			canvas.Line(s, v.X-math.Cos(a)*f.u(25), v.Y-math.Sin(a)*f.u(25),
				v.X+math.Cos(a)*f.u(25), v.Y+math.Sin(a)*f.u(25), draw.Colors.White, 3*k)
			f.text(fmt.Sprintf("%.0f%%", open), vx, vy+55, canvas.MonoBold, 14, draw.Colors.White, canvas.AlignCenter)
			draw.Bar(s, f.u(vx-30), f.u(vy+65), f.u(60), 5*k, open/100, draw.Colors.Neon)

			canvas.Line(s, v.X, v.Y+f.u(35), core.X, core.Y-f.u(75), canvas.Fade(draw.Colors.Purple, 0.4), k)
		}
	}

	if f.after(10) {
		f.text("Model Predictive Control under multi-variable constraints", 0, -370, canvas.Mono, 16, draw.Colors.Steel, canvas.AlignCenter)
	}
}
