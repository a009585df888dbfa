package draw

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
)

// Blink reports whether blinking readouts are lit at time t.
func Blink(t float64) bool { return math.Sin(t*8) > 0 }

// TechIndicator draws a labelled readout box whose value blinks.
func TechIndicator(s canvas.Surface, x, y float64, label, value string, t, k float64) {
	w, h := 220*k, 60*k
	Panel(s, x, y, w, h, Colors.Neon, 2*k)

	canvas.Text(s, label, x+15*k, y+22*k, canvas.MonoBold, 14*k, Colors.Neon, canvas.AlignLeft)

	valueColor := Colors.NeonDim
	if Blink(t) {
		valueColor = Colors.White
	}
	canvas.Text(s, value, x+15*k, y+48*k, canvas.MonoBold, 16*k, valueColor, canvas.AlignLeft)
}

// Wave returns the vertical offset, in design units, of a chart trace at
// horizontal position u (design units) and time t.
type Wave func(u, t float64) float64

// PIDWave is the oscillating response of a poorly tuned PID loop.
func PIDWave(u, t float64) float64 {
	return math.Sin((u/8+t*4)*0.8)*35 + math.Sin((u/4+t*6)*1.2)*15
}

// MPCWave is the smooth response of a predictive controller.
func MPCWave(u, t float64) float64 {
	return math.Sin((u/20+t*1.5)*0.3) * 22
}

// ImbalanceWave is the wide pressure swing shown for the legacy system.
func ImbalanceWave(u, t float64) float64 {
	return math.Sin((u/10+t*4)*0.8)*50 + math.Sin((u/5+t*6)*1.5)*20
}

// Chart is a framed trace with a title.
type Chart struct {
	X, Y, W, H float64
	Title      string
	Color      gg.RGBA
	Wave       Wave
	// Forecast draws the last 30% of the trace dashed and faded.
	Forecast bool
	// Amplitude scales the wave; zero means 1.
	Amplitude float64
}

// ChartBox draws c at time t.
func ChartBox(s canvas.Surface, c Chart, t, k float64) {
	Panel(s, c.X, c.Y, c.W, c.H, c.Color, 3*k)
	if c.Title != "" {
		canvas.Text(s, c.Title, c.X+c.W/2, c.Y+30*k, canvas.SansBold, 16*k, c.Color, canvas.AlignCenter)
	}

	wave := c.Wave
	if wave == nil {
		wave = PIDWave
	}
	amp := c.Amplitude
	if amp == 0 {
		amp = 1
	}

	split := c.W
	if c.Forecast {
		split = c.W * 0.7
	}
	mid := c.Y + c.H/2
	step := math.Max(1, k)

	trace := func(from, to float64) {
		for px := from; px <= to; px += step {
			y := mid + wave(px/k, t)*amp*k
			if px == from {
				s.MoveTo(c.X+px, y)
			} else {
				s.LineTo(c.X+px, y)
			}
		}
		s.Stroke()
	}

	s.SetLineWidth(3 * k)
	s.SetStrokeColor(c.Color)
	trace(0, split)

	if c.Forecast {
		s.SetDash(4*k, 4*k)
		s.SetStrokeColor(canvas.Fade(c.Color, 0.5))
		trace(split, c.W)
		s.SetDash()
	}
}

// Gauge draws a 240° dial with a needle at frac of full scale.
func Gauge(s canvas.Surface, cx, cy, r, frac float64, label, readout string, color gg.RGBA, k float64) {
	frac = math.Max(0, math.Min(1, frac))
	start := math.Pi * 5 / 6
	sweep := math.Pi * 4 / 3

	canvas.FillCircle(s, cx, cy, r, Colors.Slate)

	s.SetStrokeColor(Colors.NeonDim)
	s.SetLineWidth(6 * k)
	Arc(s, cx, cy, r*0.82, start, start+sweep)
	s.Stroke()

	s.SetStrokeColor(color)
	Arc(s, cx, cy, r*0.82, start, start+sweep*frac)
	s.Stroke()

	a := start + sweep*frac
	canvas.Line(s, cx, cy, cx+math.Cos(a)*r*0.7, cy+math.Sin(a)*r*0.7, Colors.White, 3*k)
	canvas.FillCircle(s, cx, cy, 5*k, Colors.White)

	canvas.Text(s, readout, cx, cy+r*0.55, canvas.MonoBold, 16*k, color, canvas.AlignCenter)
	canvas.Text(s, label, cx, cy+r+24*k, canvas.SansBold, 15*k, Colors.Neon, canvas.AlignCenter)
}

// Background clears the surface and paints the radial backdrop and grid.
func Background(s canvas.Surface, w, h, k float64) {
	s.Clear(Colors.BackgroundEdge)

	cx, cy := w/2, h/2
	s.SetFillGradient(canvas.RadialGradient(cx, cy, 0, cy,
		canvas.Stop{Offset: 0, Color: Colors.Background},
		canvas.Stop{Offset: 1, Color: Colors.BackgroundEdge},
	))
	s.DrawRectangle(0, 0, w, h)
	s.Fill()

	grid := 40 * k
	if grid < 4 {
		grid = 4
	}
	s.SetStrokeColor(Colors.NeonDim)
	s.SetLineWidth(0.5)
	for x := 0.0; x < w; x += grid {
		s.MoveTo(x, 0)
		s.LineTo(x, h)
	}
	for y := 0.0; y < h; y += grid {
		s.MoveTo(0, y)
		s.LineTo(w, y)
	}
	s.Stroke()
}
