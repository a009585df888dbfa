package viz

import (
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/render"
	"github.com/san-kum/deepshow/internal/scenes"
)

var _ canvas.Surface = (*Braille)(nil)

func TestBrailleSetUnset(t *testing.T) {
	c := NewBraille(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	assert.Equal(t, rune(0x2801), c.Grid[0][0])
	assert.Equal(t, rune(0x2880), c.Grid[0][1])
	assert.Equal(t, 2, c.Lit())

	c.Unset(0, 0)
	assert.Equal(t, rune(blank), c.Grid[0][0])

	// Out of range is ignored.
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Unset(99, 99)
	assert.Equal(t, 1, c.Lit())
}

func TestBrailleDrawLine(t *testing.T) {
	c := NewBraille(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for _, r := range c.Grid[0] {
		assert.Equal(t, rune(0x2809), r)
	}
	assert.Equal(t, "⠉⠉⠉⠉\n", c.String())
}

func TestBrailleFillRect(t *testing.T) {
	c := NewBraille(4, 2)
	canvas.FillRect(c, 0, 0, 4, 4, gg.White)
	assert.Equal(t, 16, c.Lit())
	assert.Equal(t, rune(0x28ff), c.Grid[0][0])
	assert.Equal(t, rune(0x28ff), c.Grid[0][1])
	assert.Equal(t, rune(blank), c.Grid[1][0])
}

func TestBrailleDarkFillHides(t *testing.T) {
	c := NewBraille(4, 2)
	canvas.FillRect(c, 0, 0, 8, 8, gg.White)
	require.Equal(t, 64, c.Lit())

	canvas.FillRect(c, 0, 0, 4, 8, gg.RGBA{R: 0.04, G: 0.08, B: 0.16, A: 0.9})
	assert.Equal(t, 32, c.Lit())
}

func TestBrailleFaintPaintIgnored(t *testing.T) {
	c := NewBraille(4, 2)
	canvas.FillRect(c, 0, 0, 8, 8, gg.RGBA{R: 1, G: 1, B: 1, A: 0.1})
	assert.Zero(t, c.Lit())

	// The dim grid neon stays dark.
	canvas.Line(c, 0, 0, 7, 7, gg.RGBA{G: 240.0 / 255, B: 1, A: 0.3}, 1)
	assert.Zero(t, c.Lit())

	canvas.WithAlpha(c, 0.1, func() {
		canvas.Line(c, 0, 0, 7, 7, gg.White, 2)
	})
	assert.Zero(t, c.Lit())
}

func TestBrailleGradientShadesPerDot(t *testing.T) {
	c := NewBraille(8, 4)
	c.SetFillGradient(canvas.RadialGradient(8, 8, 0, 8,
		canvas.Stop{Offset: 0, Color: gg.White},
		canvas.Stop{Offset: 1, Color: canvas.Fade(gg.White, 0)},
	))
	c.DrawRectangle(0, 0, 16, 16)
	c.Fill()

	lit := c.Lit()
	assert.Greater(t, lit, 0)
	assert.Less(t, lit, 16*16)
	assert.Equal(t, rune(blank), c.Grid[0][0], "corner lies outside the glow")
	assert.NotEqual(t, rune(blank), c.Grid[2][4], "center is lit")
}

func TestBrailleTransform(t *testing.T) {
	c := NewBraille(4, 2)
	canvas.WithState(c, func() {
		c.Translate(4, 4)
		canvas.Line(c, 0, 0, 0, 0, gg.White, 1)
	})
	assert.Equal(t, 1, c.Lit())
	assert.NotEqual(t, rune(blank), c.Grid[1][2])
}

func TestBrailleText(t *testing.T) {
	c := NewBraille(10, 3)
	canvas.Text(c, "MPC", 10, 8, canvas.SansBold, 8, gg.White, canvas.AlignCenter)
	assert.Contains(t, c.String(), "MPC")

	small := NewBraille(10, 3)
	canvas.Text(small, "MPC", 10, 8, canvas.Sans, 2, gg.White, canvas.AlignCenter)
	assert.NotContains(t, small.String(), "MPC")
}

func TestBrailleRenderKeepsShape(t *testing.T) {
	c := NewBraille(6, 3)
	canvas.FillCircle(c, 6, 6, 4, gg.Hex("#00f0ff"))
	out := c.Render()
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Greater(t, c.Lit(), 20)
}

func TestBrailleDispatcherFrame(t *testing.T) {
	b := NewBraille(80, 30)
	d := render.New(scenes.Default())
	d.Observe(4)
	d.Advance(12_000_000_000)

	require.NoError(t, d.Paint(b, float64(b.PixelWidth()), float64(b.PixelHeight()), d.Plan()))
	assert.Greater(t, b.Lit(), 0)
	assert.Len(t, strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n"), 30)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, 10, strings.Count(ProgressBar(0.5, 10), "█")+strings.Count(ProgressBar(0.5, 10), "░"))
	assert.Equal(t, 10, strings.Count(ProgressBar(2, 10), "█"))
	assert.Equal(t, 10, strings.Count(ProgressBar(-1, 10), "░"))
	assert.Empty(t, ProgressBar(0.5, 0))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "0:00.0", Clock(0))
	assert.Equal(t, "1:15.0", Clock(75))
	assert.Equal(t, "0:07.5", Clock(7.5))
	assert.Equal(t, "0:00.0", Clock(-3))
}

func TestHexRGBA(t *testing.T) {
	assert.Equal(t, "#00f0ff", hexRGBA(gg.Hex("#00f0ff")))
	assert.Equal(t, "#ffffff", hexRGBA(gg.RGBA{R: 2, G: 1, B: 1, A: 1}))
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "ocean", GetTheme("ocean").Name)
	assert.Equal(t, "neon", GetTheme("nope").Name)
	assert.Equal(t, []string{"neon", "minimal", "ocean"}, ThemeNames())
}

func TestPlot(t *testing.T) {
	assert.Empty(t, Plot("empty", 40, 5))

	out := Plot("pressure", 40, 5,
		Series{Name: "pid", Data: []float64{0, 1, 0, 1}, Color: asciigraph.Red},
		Series{Name: "mpc", Data: []float64{0, 0.5, 0.5, 0.5}, Color: asciigraph.Green},
	)
	assert.Contains(t, out, "pressure")

	assert.Equal(t, []float64{3, 4}, Tail([]float64{1, 2, 3, 4}, 2))
	assert.Len(t, Tail([]float64{1}, 5), 1)
}
