package viz

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/gg"
	"github.com/san-kum/deepshow/internal/canvas"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Braille is a canvas.Surface that rasterizes into a grid of braille
// characters, two dots wide and four tall per cell. A dot is either on or
// off: paint lights dots when its ink (alpha times luminance) reaches
// Threshold, and mostly opaque dark paint switches them off again so panels
// hide what is behind them. Each cell remembers the last color that lit it.
type Braille struct {
	Width, Height int
	Grid          [][]rune

	// Threshold is the minimum ink that lights a dot. The default sits just
	// above the dim neon used for background grids.
	Threshold float64
	// MinText is the smallest device font size, in dots, that is printed.
	MinText float64

	colors  [][]gg.RGBA
	overlay [][]rune

	fill     gg.RGBA
	gradient *canvas.Gradient
	stroke   gg.RGBA
	width    float64
	dashed   bool
	fontSize float64

	matrix gg.Matrix
	stack  []gg.Matrix
	alphas []float64
	paths  [][]gg.Point
}

func NewBraille(w, h int) *Braille {
	w, h = max(w, 0), max(h, 0)
	c := &Braille{
		Width:     w,
		Height:    h,
		Grid:      make([][]rune, h),
		Threshold: 0.25,
		MinText:   4,
		colors:    make([][]gg.RGBA, h),
		overlay:   make([][]rune, h),
		fill:      gg.White,
		stroke:    gg.White,
		width:     1,
		matrix:    gg.Identity(),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.colors[i] = make([]gg.RGBA, w)
		c.overlay[i] = make([]rune, w)
	}
	c.Reset()
	return c
}

// PixelWidth and PixelHeight give the surface size in dots.
func (c *Braille) PixelWidth() int  { return c.Width * 2 }
func (c *Braille) PixelHeight() int { return c.Height * 4 }

// Set lights the dot at (x, y).
func (c *Braille) Set(x, y int) { c.setColor(x, y, c.stroke) }

func (c *Braille) setColor(x, y int, color gg.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.colors[row][col] = color
}

// Unset clears the dot at (x, y).
func (c *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Reset blanks every cell and drops printed text.
func (c *Braille) Reset() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.overlay[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Braille) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, c.stroke, false)
}

func (c *Braille) line(x0, y0, x1, y1 int, color gg.RGBA, dashed bool) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for n := 0; ; n++ {
		if !dashed || (n/3)%2 == 0 {
			c.setColor(x0, y0, color)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Braille) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if o := c.overlay[i][j]; o != 0 {
				r = o
			}
			b.WriteRune(r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render returns the grid with each run of cells colored by lipgloss.
func (c *Braille) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		var runColor string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}

		for j, r := range row {
			color := ""
			if o := c.overlay[i][j]; o != 0 {
				r = o
				color = hexRGBA(c.colors[i][j])
			} else if r != blank {
				color = hexRGBA(c.colors[i][j])
			}
			if color != runColor && r != blank {
				flush()
				runColor = color
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// Lit counts lit dots.
func (c *Braille) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for v := r - blank; v != 0; v &= v - 1 {
				n++
			}
		}
	}
	return n
}

// Surface implementation.

func (c *Braille) Clear(gg.RGBA) {
	c.Reset()
	c.paths = nil
}

func (c *Braille) SetFillColor(col gg.RGBA)   { c.fill, c.gradient = col, nil }
func (c *Braille) SetStrokeColor(col gg.RGBA) { c.stroke = col }
func (c *Braille) SetLineWidth(w float64)     { c.width = w }
func (c *Braille) SetDash(lengths ...float64) { c.dashed = len(lengths) > 0 }

// SetFillGradient shades later fills dot by dot. The gradient geometry is
// moved into device space with the current transform; text uses the most
// opaque stop.
func (c *Braille) SetFillGradient(g canvas.Gradient) {
	p0, p1 := c.transform(g.X0, g.Y0), c.transform(g.X1, g.Y1)
	k := c.scale()
	g.X0, g.Y0, g.X1, g.Y1 = p0.X, p0.Y, p1.X, p1.Y
	g.R0, g.R1 = g.R0*k, g.R1*k
	c.gradient = &g
	c.fill = g.Peak()
}

func (c *Braille) MoveTo(x, y float64) {
	c.paths = append(c.paths, []gg.Point{c.transform(x, y)})
}

func (c *Braille) LineTo(x, y float64) {
	if len(c.paths) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := len(c.paths) - 1
	c.paths[last] = append(c.paths[last], c.transform(x, y))
}

func (c *Braille) ClosePath() {
	if len(c.paths) == 0 {
		return
	}
	last := len(c.paths) - 1
	if p := c.paths[last]; len(p) > 1 {
		c.paths[last] = append(p, p[0])
	}
}

func (c *Braille) DrawCircle(x, y, r float64) {
	const segments = 24
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		px, py := x+r*math.Cos(a), y+r*math.Sin(a)
		if i == 0 {
			c.MoveTo(px, py)
		} else {
			c.LineTo(px, py)
		}
	}
}

func (c *Braille) DrawRectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

func (c *Braille) Fill() {
	c.FillPreserve()
	c.paths = nil
}

func (c *Braille) FillPreserve() {
	if c.gradient != nil {
		g := *c.gradient
		c.scanFill(func(x, y int) { c.paint(x, y, g.ColorAt(float64(x)+0.5, float64(y)+0.5)) })
		return
	}
	alpha := c.fill.A * c.alpha()
	switch {
	case alpha*luminance(c.fill) >= c.Threshold:
		c.scanFill(func(x, y int) { c.setColor(x, y, c.fill) })
	case alpha >= 0.5:
		c.scanFill(c.Unset)
	}
}

// paint lights or clears one dot for a fill of color col.
func (c *Braille) paint(x, y int, col gg.RGBA) {
	alpha := col.A * c.alpha()
	switch {
	case alpha*luminance(col) >= c.Threshold:
		c.setColor(x, y, col)
	case alpha >= 0.5:
		c.Unset(x, y)
	}
}

func (c *Braille) Stroke() {
	paths := c.paths
	c.paths = nil
	if c.stroke.A*c.alpha()*luminance(c.stroke) < c.Threshold {
		return
	}
	for _, p := range paths {
		for i := 1; i < len(p); i++ {
			c.line(round(p[i-1].X), round(p[i-1].Y), round(p[i].X), round(p[i].Y), c.stroke, c.dashed)
		}
		if len(p) == 1 {
			c.setColor(round(p[0].X), round(p[0].Y), c.stroke)
		}
	}
}

func (c *Braille) SetFont(_ canvas.FontStyle, size float64) { c.fontSize = size }

// FillText prints s into the cell grid when the font is large enough to
// read at this resolution. Each character takes one cell.
func (c *Braille) FillText(s string, x, y float64, align canvas.Align) {
	if c.fontSize*c.scale() < c.MinText {
		return
	}
	if c.fill.A*c.alpha()*luminance(c.fill) < c.Threshold {
		return
	}
	p := c.transform(x, y)
	runes := []rune(s)
	col := int(math.Round(p.X/2 - float64(len(runes))*align.Anchor()))
	row := int(math.Floor((p.Y - 1) / 4))
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range runes {
		if j := col + i; j >= 0 && j < c.Width {
			c.overlay[row][j] = r
			c.colors[row][j] = c.fill
		}
	}
}

func (c *Braille) Push() { c.stack = append(c.stack, c.matrix) }

func (c *Braille) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Braille) Translate(x, y float64) { c.matrix = c.matrix.Multiply(gg.Translate(x, y)) }
func (c *Braille) Scale(sx, sy float64)   { c.matrix = c.matrix.Multiply(gg.Scale(sx, sy)) }
func (c *Braille) Rotate(angle float64)   { c.matrix = c.matrix.Multiply(gg.Rotate(angle)) }

func (c *Braille) PushAlpha(alpha float64) {
	c.alphas = append(c.alphas, math.Max(0, math.Min(1, alpha)))
}

func (c *Braille) PopAlpha() {
	if len(c.alphas) > 0 {
		c.alphas = c.alphas[:len(c.alphas)-1]
	}
}

func (c *Braille) alpha() float64 {
	a := 1.0
	for _, v := range c.alphas {
		a *= v
	}
	return a
}

func (c *Braille) transform(x, y float64) gg.Point {
	return c.matrix.TransformPoint(gg.Pt(x, y))
}

func (c *Braille) scale() float64 {
	m := c.matrix
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

// scanFill applies plot to every dot inside the current path using the
// even-odd rule, sampling dot centers.
func (c *Braille) scanFill(plot func(x, y int)) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range c.paths {
		for _, pt := range p {
			minY = math.Min(minY, pt.Y)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if minY > maxY {
		return
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(c.PixelHeight()-1, int(math.Ceil(maxY)))

	var xs []float64
	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for _, p := range c.paths {
			n := len(p)
			for i := 0; i < n; i++ {
				a, b := p[i], p[(i+1)%n]
				if (a.Y <= cy) == (b.Y <= cy) {
					continue
				}
				xs = append(xs, a.X+(cy-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := max(0, int(math.Ceil(xs[i]-0.5)))
			to := min(c.PixelWidth()-1, int(math.Floor(xs[i+1]-0.5)))
			for x := from; x <= to; x++ {
				plot(x, y)
			}
		}
	}
}

func luminance(c gg.RGBA) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
