package draw

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
)

// polygon fills pts with fill and outlines it with the dim neon edge.
func polygon(s canvas.Surface, pts []gg.Point, fill gg.RGBA, edge float64) {
	if len(pts) < 3 {
		return
	}
	s.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.ClosePath()
	s.SetFillColor(fill)
	s.FillPreserve()
	s.SetStrokeColor(Colors.NeonDim)
	s.SetLineWidth(edge)
	s.Stroke()
}

// IsoCube draws a box of size w×d×h whose upper face sits at height o.Z.
// The side faces hang below it.
func IsoCube(s canvas.Surface, anchor gg.Point, o Vec3, w, h, d float64, color gg.RGBA) {
	at := func(dx, dy, dz float64) gg.Point {
		return IsoAt(anchor, o.Add(Vec3{dx, dy, dz}))
	}

	polygon(s, []gg.Point{at(0, 0, 0), at(w, 0, 0), at(w, d, 0), at(0, d, 0)}, color, 1)
	polygon(s, []gg.Point{at(0, 0, 0), at(w, 0, 0), at(w, 0, -h), at(0, 0, -h)}, canvas.Fade(color, 0.25), 1)
	polygon(s, []gg.Point{at(w, 0, 0), at(w, 0, -h), at(w, d, -h), at(w, d, 0)}, canvas.Fade(color, 0.19), 1)
}

// Building is a stack of identical floors.
type Building struct {
	Floors      int
	FloorHeight float64
	Width       float64
	Depth       float64
	Transparent bool
}

// Height is the total height of the building in world units.
func (b Building) Height() float64 { return float64(b.Floors) * b.FloorHeight }

// Corner projects a footprint corner (fx, fy in {0, 1}) at height z.
func (b Building) Corner(anchor gg.Point, fx, fy, z float64) gg.Point {
	return IsoAt(anchor, Vec3{fx * b.Width, fy * b.Depth, z})
}

// FloorY returns the screen y of the front corner at floor f.
func (b Building) FloorY(anchor gg.Point, f int) float64 {
	return b.Corner(anchor, 1, 1, float64(f)*b.FloorHeight).Y
}

// IsoBuilding draws b with the back corner of its footprint at anchor.
// Solid buildings get an accent ring every fifth floor.
func IsoBuilding(s canvas.Surface, anchor gg.Point, b Building) {
	color := gg.RGBA{R: 30.0 / 255, G: 41.0 / 255, B: 59.0 / 255, A: 0.3}
	if b.Transparent {
		color = canvas.Fade(Colors.Neon, 0.19)
	}

	for f := 0; f < b.Floors; f++ {
		z := float64(f+1) * b.FloorHeight
		IsoCube(s, anchor, Vec3{0, 0, z}, b.Width, b.FloorHeight, b.Depth, color)

		if !b.Transparent && f%5 == 0 {
			back := b.Corner(anchor, 0, 0, z)
			right := b.Corner(anchor, 1, 0, z)
			left := b.Corner(anchor, 0, 1, z)
			s.SetStrokeColor(Colors.NeonDim)
			s.SetLineWidth(1.5)
			s.MoveTo(left.X, left.Y)
			s.LineTo(back.X, back.Y)
			s.LineTo(right.X, right.Y)
			s.Stroke()
		}
	}
}

// Cloud draws a four lobed cloud outline centered near (x, y).
func Cloud(s canvas.Surface, x, y float64, color gg.RGBA, k float64) {
	lobes := [][3]float64{{0, 0, 30}, {35, -8, 22}, {65, 0, 27}, {35, 15, 18}}
	for _, l := range lobes {
		s.DrawCircle(x+l[0]*k, y+l[1]*k, l[2]*k)
	}
	s.SetFillColor(canvas.Fade(color, 0.25))
	s.FillPreserve()
	s.SetStrokeColor(color)
	s.SetLineWidth(3 * k)
	s.Stroke()
}

// Panel draws the translucent navy box used behind readouts.
func Panel(s canvas.Surface, x, y, w, h float64, border gg.RGBA, width float64) {
	canvas.FillRect(s, x, y, w, h, Colors.Panel)
	canvas.StrokeRect(s, x, y, w, h, border, width)
}

// Bar draws a horizontal bar filled to frac of its width over a dim track.
func Bar(s canvas.Surface, x, y, w, h, frac float64, color gg.RGBA) {
	frac = math.Max(0, math.Min(1, frac))
	canvas.FillRect(s, x, y, w, h, Colors.NeonDim)
	canvas.FillRect(s, x, y, w*frac, h, color)
}

// Arc adds a polyline approximation of a circular arc to the current path.
func Arc(s canvas.Surface, cx, cy, r, a0, a1 float64) {
	const step = math.Pi / 48
	n := int(math.Ceil(math.Abs(a1-a0)/step)) + 1
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
}
