package draw

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
)

const (
	ParticleCount = 20
	ParticleSpeed = 3.0
)

// Phase returns the fractional part of x in [0, 1).
func Phase(x float64) float64 {
	p := x - math.Floor(x)
	if p >= 1 {
		return 0
	}
	return p
}

// PointAlong returns the point at fraction u in [0, 1] of the polyline path.
// Vertices are treated as evenly spaced.
func PointAlong(path []gg.Point, u float64) gg.Point {
	if len(path) == 1 {
		return path[0]
	}
	pos := u * float64(len(path)-1)
	seg := int(pos)
	if seg >= len(path)-1 {
		return path[len(path)-1]
	}
	f := pos - float64(seg)
	a, b := path[seg], path[seg+1]
	return gg.Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
}

// ParticlePositions returns where each particle of a flow sits at time t.
func ParticlePositions(path []gg.Point, t float64) []gg.Point {
	if len(path) < 2 {
		return nil
	}
	out := make([]gg.Point, ParticleCount)
	for i := range out {
		out[i] = PointAlong(path, Phase(t*ParticleSpeed+float64(i)/ParticleCount))
	}
	return out
}

// Glow paints a radial halo of color fading to transparent at radius r.
func Glow(s canvas.Surface, x, y, r float64, color gg.RGBA, core float64) {
	s.SetFillGradient(canvas.RadialGradient(x, y, 0, r,
		canvas.Stop{Offset: 0, Color: canvas.Fade(color, core)},
		canvas.Stop{Offset: 1, Color: canvas.Fade(color, 0)},
	))
	s.DrawCircle(x, y, r)
	s.Fill()
}

// ParticleFlow draws ParticleCount glowing dots looping along path. Paths
// with fewer than two points draw nothing.
func ParticleFlow(s canvas.Surface, path []gg.Point, t float64, color gg.RGBA, k float64) {
	for _, p := range ParticlePositions(path, t) {
		s.SetFillGradient(canvas.RadialGradient(p.X, p.Y, 0, 12*k,
			canvas.Stop{Offset: 0, Color: color},
			canvas.Stop{Offset: 0.5, Color: canvas.Fade(color, 0.375)},
			canvas.Stop{Offset: 1, Color: canvas.Fade(color, 0)},
		))
		s.DrawCircle(p.X, p.Y, 12*k)
		s.Fill()

		canvas.FillCircle(s, p.X, p.Y, 3*k, Colors.White)
	}
}

// ChaosFlow draws a turbulent stream between two points.
func ChaosFlow(s canvas.Surface, from, to gg.Point, t, k float64) {
	const segments = 10
	s.SetStrokeColor(Colors.Neon)
	s.SetLineWidth(3 * k)
	for i := 0; i <= segments; i++ {
		f := float64(i) / segments
		x := from.X + (to.X-from.X)*f
		y := from.Y + (to.Y-from.Y)*f + math.Sin(t*10+float64(i)*0.5)*8*k
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.Stroke()
}

// PulsePhase is the expanding ring phase at time t.
func PulsePhase(t float64) float64 { return Phase(t * 2) }

// PulseRing draws a ring expanding from p and fading as it grows, over a
// solid core.
func PulseRing(s canvas.Surface, p gg.Point, t float64, color gg.RGBA, k float64) {
	phase := PulsePhase(t)

	s.SetStrokeColor(canvas.Fade(color, 1-phase))
	s.SetLineWidth(1.5 * k)
	s.DrawCircle(p.X, p.Y, phase*35*k)
	s.Stroke()

	canvas.FillCircle(s, p.X, p.Y, 6*k, color)
}
