package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// OpKind names a recorded paint operation.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpFill   OpKind = "fill"
	OpStroke OpKind = "stroke"
	OpText   OpKind = "text"
)

// Op is one recorded paint. Points are in device space and Color already
// carries the global alpha.
type Op struct {
	Kind     OpKind
	Color    gg.RGBA
	Alpha    float64
	Gradient bool
	Width    float64
	Dashed   bool
	Points   []gg.Point
	Text     string
	Size     float64
}

// Recorder is a Surface that keeps a log of paint operations instead of
// producing pixels.
type Recorder struct {
	Ops []Op

	fill     gg.RGBA
	gradient *Gradient
	stroke   gg.RGBA
	width    float64
	dashed   bool
	fontSize float64

	matrix gg.Matrix
	stack  []gg.Matrix
	alphas []float64
	path   []gg.Point
}

func NewRecorder() *Recorder {
	return &Recorder{
		fill:   gg.Black,
		stroke: gg.Black,
		width:  1,
		matrix: gg.Identity(),
	}
}

// Alpha is the current global alpha.
func (r *Recorder) Alpha() float64 {
	a := 1.0
	for _, v := range r.alphas {
		a *= v
	}
	return a
}

// AlphaDepth is the number of unbalanced PushAlpha calls.
func (r *Recorder) AlphaDepth() int { return len(r.alphas) }

// StateDepth is the number of unbalanced Push calls.
func (r *Recorder) StateDepth() int { return len(r.stack) }

// Reset drops recorded ops, keeping styles.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every drawn string in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// MaxAlpha returns the highest global alpha any paint was made with.
func (r *Recorder) MaxAlpha() float64 {
	m := 0.0
	for _, op := range r.Ops {
		if op.Kind != OpClear && op.Alpha > m {
			m = op.Alpha
		}
	}
	return m
}

func (r *Recorder) Clear(c gg.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c, Alpha: 1})
}

func (r *Recorder) SetFillColor(c gg.RGBA) {
	r.fill = c
	r.gradient = nil
}

func (r *Recorder) SetFillGradient(g Gradient) {
	r.gradient = &g
	r.fill = g.Peak()
}

func (r *Recorder) SetStrokeColor(c gg.RGBA) { r.stroke = c }
func (r *Recorder) SetLineWidth(w float64)   { r.width = w }
func (r *Recorder) SetDash(lengths ...float64) {
	r.dashed = len(lengths) > 0
}

func (r *Recorder) MoveTo(x, y float64) { r.path = append(r.path, r.transform(x, y)) }
func (r *Recorder) LineTo(x, y float64) { r.path = append(r.path, r.transform(x, y)) }
func (r *Recorder) ClosePath()          {}

func (r *Recorder) DrawCircle(x, y, radius float64) {
	const segments = 16
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		r.path = append(r.path, r.transform(x+radius*math.Cos(a), y+radius*math.Sin(a)))
	}
}

func (r *Recorder) DrawRectangle(x, y, w, h float64) {
	r.path = append(r.path,
		r.transform(x, y),
		r.transform(x+w, y),
		r.transform(x+w, y+h),
		r.transform(x, y+h),
	)
}

func (r *Recorder) Fill() {
	r.FillPreserve()
	r.path = nil
}

func (r *Recorder) FillPreserve() {
	r.Ops = append(r.Ops, Op{
		Kind:     OpFill,
		Color:    Fade(r.fill, r.Alpha()),
		Alpha:    r.Alpha(),
		Gradient: r.gradient != nil,
		Points:   append([]gg.Point(nil), r.path...),
	})
}

func (r *Recorder) Stroke() {
	r.Ops = append(r.Ops, Op{
		Kind:   OpStroke,
		Color:  Fade(r.stroke, r.Alpha()),
		Alpha:  r.Alpha(),
		Width:  r.width,
		Dashed: r.dashed,
		Points: r.path,
	})
	r.path = nil
}

func (r *Recorder) SetFont(_ FontStyle, size float64) { r.fontSize = size }

func (r *Recorder) FillText(s string, x, y float64, _ Align) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpText,
		Color:  Fade(r.fill, r.Alpha()),
		Alpha:  r.Alpha(),
		Text:   s,
		Size:   r.fontSize,
		Points: []gg.Point{r.transform(x, y)},
	})
}

func (r *Recorder) Push() { r.stack = append(r.stack, r.matrix) }

func (r *Recorder) Pop() {
	if len(r.stack) == 0 {
		return
	}
	r.matrix = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) { r.matrix = r.matrix.Multiply(gg.Translate(x, y)) }
func (r *Recorder) Scale(sx, sy float64)   { r.matrix = r.matrix.Multiply(gg.Scale(sx, sy)) }
func (r *Recorder) Rotate(angle float64)   { r.matrix = r.matrix.Multiply(gg.Rotate(angle)) }

func (r *Recorder) PushAlpha(alpha float64) {
	r.alphas = append(r.alphas, math.Max(0, math.Min(1, alpha)))
}

func (r *Recorder) PopAlpha() {
	if len(r.alphas) > 0 {
		r.alphas = r.alphas[:len(r.alphas)-1]
	}
}

func (r *Recorder) transform(x, y float64) gg.Point {
	return r.matrix.TransformPoint(gg.Pt(x, y))
}
