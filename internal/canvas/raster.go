package canvas

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// Raster is a Surface that rasterizes into an in-memory image with gg.
//
// gg shares one brush between fill and stroke and does not transform text or
// gradients, so Raster keeps canvas style state itself and maps coordinates
// through the current matrix where gg does not. Paint errors are sticky and
// reported by Err.
type Raster struct {
	dc    *gg.Context
	fonts *Fonts

	fill     gg.RGBA
	gradient *Gradient
	stroke   gg.RGBA
	style    FontStyle
	size     float64

	layers int
	err    error
}

// NewRaster returns a w×h surface. fonts may be nil, in which case text is
// skipped.
func NewRaster(w, h int, fonts *Fonts) *Raster {
	return &Raster{
		dc:     gg.NewContext(w, h),
		fonts:  fonts,
		fill:   gg.Black,
		stroke: gg.Black,
		size:   12,
	}
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

// Err returns the first paint error since the last Clear.
func (r *Raster) Err() error { return r.err }

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }

func (r *Raster) Close() error { return r.dc.Close() }

func (r *Raster) Clear(c gg.RGBA) {
	for r.layers > 0 {
		r.PopAlpha()
	}
	r.err = nil
	r.dc.Identity()
	r.dc.ClearPath()
	r.dc.ClearWithColor(c)
}

func (r *Raster) SetFillColor(c gg.RGBA) {
	r.fill = c
	r.gradient = nil
}

func (r *Raster) SetFillGradient(g Gradient) {
	r.gradient = &g
	r.fill = g.Peak()
}

func (r *Raster) SetStrokeColor(c gg.RGBA) { r.stroke = c }

func (r *Raster) SetLineWidth(w float64) { r.dc.SetLineWidth(w) }

func (r *Raster) SetDash(lengths ...float64) { r.dc.SetDash(lengths...) }

func (r *Raster) MoveTo(x, y float64)              { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64)              { r.dc.LineTo(x, y) }
func (r *Raster) ClosePath()                       { r.dc.ClosePath() }
func (r *Raster) DrawCircle(x, y, radius float64)  { r.dc.DrawCircle(x, y, radius) }
func (r *Raster) DrawRectangle(x, y, w, h float64) { r.dc.DrawRectangle(x, y, w, h) }

func (r *Raster) Fill() {
	r.applyFill()
	r.check(r.dc.Fill())
}

func (r *Raster) FillPreserve() {
	r.applyFill()
	r.check(r.dc.FillPreserve())
}

func (r *Raster) Stroke() {
	r.dc.SetRGBA(r.stroke.R, r.stroke.G, r.stroke.B, r.stroke.A)
	r.check(r.dc.Stroke())
}

func (r *Raster) SetFont(style FontStyle, size float64) {
	r.style = style
	r.size = size
}

func (r *Raster) FillText(s string, x, y float64, align Align) {
	if r.fonts == nil || s == "" {
		return
	}
	k := r.scaleFactor()
	if k*r.size < 1 {
		return
	}
	px, py := r.dc.TransformPoint(x, y)

	// Text is drawn in device space, so save the matrix around it.
	r.dc.Push()
	r.dc.Identity()
	r.dc.SetFont(r.fonts.Face(r.style, r.size*k))
	r.dc.SetRGBA(r.fill.R, r.fill.G, r.fill.B, r.fill.A)
	r.dc.DrawStringAnchored(s, px, py, align.Anchor(), 0)
	r.dc.Pop()
}

func (r *Raster) Push()                  { r.dc.Push() }
func (r *Raster) Pop()                   { r.dc.Pop() }
func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Scale(sx, sy float64)   { r.dc.Scale(sx, sy) }
func (r *Raster) Rotate(angle float64)   { r.dc.Rotate(angle) }

func (r *Raster) PushAlpha(alpha float64) {
	r.dc.PushLayer(gg.BlendNormal, alpha)
	r.layers++
}

func (r *Raster) PopAlpha() {
	if r.layers == 0 {
		return
	}
	r.dc.PopLayer()
	r.layers--
}

func (r *Raster) applyFill() {
	if r.gradient == nil {
		r.dc.SetRGBA(r.fill.R, r.fill.G, r.fill.B, r.fill.A)
		return
	}

	g := *r.gradient
	k := r.scaleFactor()
	x0, y0 := r.dc.TransformPoint(g.X0, g.Y0)
	x1, y1 := r.dc.TransformPoint(g.X1, g.Y1)

	if g.Radial {
		b := gg.NewRadialGradientBrush(x0, y0, g.R0*k, g.R1*k)
		for _, st := range g.Stops {
			b.AddColorStop(st.Offset, st.Color)
		}
		r.dc.SetFillBrush(b)
		return
	}
	b := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	for _, st := range g.Stops {
		b.AddColorStop(st.Offset, st.Color)
	}
	r.dc.SetFillBrush(b)
}

// scaleFactor is the uniform scale of the current matrix.
func (r *Raster) scaleFactor() float64 {
	m := r.dc.GetTransform()
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func (r *Raster) check(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}
