// Package canvas defines the 2D drawing surface scenes paint on and its
// backends.
//
// # Surfaces
//
// A [Surface] follows the HTML canvas model: separate fill and stroke
// styles, a current path consumed by [Surface.Fill] and [Surface.Stroke], a
// transform stack, and a global paint alpha managed with [Surface.PushAlpha]
// and [Surface.PopAlpha]. Prefer [WithAlpha] over calling the pair by hand.
//
// Backends:
//
//   - [Raster]: anti-aliased image rendering through gg
//   - [Recorder]: records calls for tests and inspection
//
// The terminal backend lives in the viz package.
package canvas

import (
	"errors"

	"github.com/gogpu/gg"
)

// ErrNoSurface indicates a frame was requested without a render target.
var ErrNoSurface = errors.New("canvas: no render surface")

// Align selects which point of a text run sits at the x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Anchor returns the horizontal anchor fraction for a.
func (a Align) Anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	default:
		return 0
	}
}

// FontStyle picks one of the bundled font faces.
type FontStyle int

const (
	Sans FontStyle = iota
	SansBold
	Mono
	MonoBold
)

// Surface is a 2D render target.
type Surface interface {
	// Clear paints every pixel with c, ignoring transform and alpha.
	Clear(c gg.RGBA)

	SetFillColor(c gg.RGBA)
	SetFillGradient(g Gradient)
	SetStrokeColor(c gg.RGBA)
	SetLineWidth(w float64)
	// SetDash sets a dash pattern; no arguments restores solid lines.
	SetDash(lengths ...float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawCircle(x, y, r float64)
	DrawRectangle(x, y, w, h float64)

	// Fill and Stroke paint the current path and clear it.
	Fill()
	Stroke()
	// FillPreserve fills without clearing so the same path can be stroked.
	FillPreserve()

	SetFont(style FontStyle, size float64)
	// FillText draws s with its baseline at y using the fill color.
	FillText(s string, x, y float64, align Align)

	Push()
	Pop()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(angle float64)

	// PushAlpha multiplies every later paint by alpha until PopAlpha.
	PushAlpha(alpha float64)
	PopAlpha()
}

// WithAlpha runs fn with the global alpha scaled by alpha and restores it
// afterwards, even if fn panics.
func WithAlpha(s Surface, alpha float64, fn func()) {
	s.PushAlpha(alpha)
	defer s.PopAlpha()
	fn()
}

// WithState runs fn between Push and Pop.
func WithState(s Surface, fn func()) {
	s.Push()
	defer s.Pop()
	fn()
}

// FillRect fills a rectangle with c.
func FillRect(s Surface, x, y, w, h float64, c gg.RGBA) {
	s.SetFillColor(c)
	s.DrawRectangle(x, y, w, h)
	s.Fill()
}

// StrokeRect outlines a rectangle.
func StrokeRect(s Surface, x, y, w, h float64, c gg.RGBA, width float64) {
	s.SetStrokeColor(c)
	s.SetLineWidth(width)
	s.DrawRectangle(x, y, w, h)
	s.Stroke()
}

// FillCircle fills a disc with c.
func FillCircle(s Surface, x, y, r float64, c gg.RGBA) {
	s.SetFillColor(c)
	s.DrawCircle(x, y, r)
	s.Fill()
}

// Line strokes a single segment.
func Line(s Surface, x1, y1, x2, y2 float64, c gg.RGBA, width float64) {
	s.SetStrokeColor(c)
	s.SetLineWidth(width)
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.Stroke()
}

// Text sets a font and color and draws s.
func Text(s Surface, str string, x, y float64, style FontStyle, size float64, c gg.RGBA, align Align) {
	s.SetFont(style, size)
	s.SetFillColor(c)
	s.FillText(str, x, y, align)
}

// Fade returns c with its alpha multiplied by a.
func Fade(c gg.RGBA, a float64) gg.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A *= a
	return c
}
