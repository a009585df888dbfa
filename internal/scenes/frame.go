package scenes

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

// Layouts are authored for a 1200×900 viewport.
const (
	DesignWidth  = 1200.0
	DesignHeight = 900.0
)

// Scale returns the design scale for a w×h viewport.
func Scale(w, h float64) float64 {
	k := math.Min(w/DesignWidth, h/DesignHeight)
	if k <= 0 || math.IsNaN(k) {
		return 0
	}
	return k
}

// frame carries the per-call layout values. Coordinates are relative to
// the viewport center.
type frame struct {
	s canvas.Surface
	k float64
	t float64
}

func newFrame(s canvas.Surface, w, h, t float64) frame {
	return frame{s: s, k: Scale(w, h), t: t}
}

// at converts design units to surface coordinates.
func (f frame) at(x, y float64) gg.Point { return gg.Pt(x*f.k, y*f.k) }

func (f frame) u(v float64) float64 { return v * f.k }

func (f frame) text(s string, x, y float64, style canvas.FontStyle, size float64, c gg.RGBA, align canvas.Align) {
	canvas.Text(f.s, s, x*f.k, y*f.k, style, size*f.k, c, align)
}

func (f frame) indicator(x, y float64, label, value string) {
	draw.TechIndicator(f.s, x*f.k, y*f.k, label, value, f.t, f.k)
}

func (f frame) after(at float64) bool { return f.t > at }

// ramp maps t in [start, start+span] onto [0, 1].
func (f frame) ramp(start, span float64) float64 {
	return math.Max(0, math.Min(1, (f.t-start)/span))
}

// tower is the 30 floor residential block shared by several scenes.
var tower = draw.Building{Floors: 30, FloorHeight: 12, Width: 90, Depth: 90}

func (f frame) tower(transparent bool) (draw.Building, gg.Point) {
	b := tower
	b.FloorHeight *= f.k
	b.Width *= f.k
	b.Depth *= f.k
	b.Transparent = transparent
	return b, f.at(-330, 170)
}
