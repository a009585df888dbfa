package draw

import (
	"math"

	"github.com/gogpu/gg"
)

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// Vec3 is a point in isometric world space. Z grows upwards.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Project maps v to screen space with Iso.
func (v Vec3) Project() gg.Point { return Iso(v.X, v.Y, v.Z) }

// Iso is the fixed isometric projection. It is linear in (x, y, z).
func Iso(x, y, z float64) gg.Point {
	return gg.Point{
		X: (x - y) * cos30,
		Y: (x+y)*sin30 - z,
	}
}

// IsoAt projects v and offsets the result by anchor.
func IsoAt(anchor gg.Point, v Vec3) gg.Point {
	p := v.Project()
	return gg.Point{X: anchor.X + p.X, Y: anchor.Y + p.Y}
}
