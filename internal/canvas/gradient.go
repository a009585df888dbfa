package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Stop is one color stop of a gradient.
type Stop struct {
	Offset float64
	Color  gg.RGBA
}

// Gradient describes a linear or radial fill in user space. Radial gradients
// share one center at (X0, Y0).
type Gradient struct {
	Radial         bool
	X0, Y0, X1, Y1 float64
	R0, R1         float64
	Stops          []Stop
}

func LinearGradient(x0, y0, x1, y1 float64, stops ...Stop) Gradient {
	return Gradient{X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}
}

func RadialGradient(cx, cy, r0, r1 float64, stops ...Stop) Gradient {
	return Gradient{Radial: true, X0: cx, Y0: cy, X1: cx, Y1: cy, R0: r0, R1: r1, Stops: stops}
}

// At returns the color at offset t in [0, 1], interpolating between stops.
func (g Gradient) At(t float64) gg.RGBA {
	if len(g.Stops) == 0 {
		return gg.Transparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// ColorAt returns the gradient color at point (x, y). Radial gradients map
// the distance from the center onto [R0, R1]; linear ones project onto the
// axis from (X0, Y0) to (X1, Y1).
func (g Gradient) ColorAt(x, y float64) gg.RGBA {
	if g.Radial {
		span := g.R1 - g.R0
		if span <= 0 {
			return g.At(1)
		}
		return g.At((math.Hypot(x-g.X0, y-g.Y0) - g.R0) / span)
	}
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return g.At(0)
	}
	return g.At(((x-g.X0)*dx + (y-g.Y0)*dy) / l2)
}

// Peak returns the most opaque stop color, a flat stand-in for backends that
// cannot shade gradients.
func (g Gradient) Peak() gg.RGBA {
	var best gg.RGBA
	for _, st := range g.Stops {
		if st.Color.A > best.A {
			best = st.Color
		}
	}
	return best
}
