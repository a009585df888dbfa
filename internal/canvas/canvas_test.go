package canvas

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithAlphaNests(t *testing.T) {
	r := NewRecorder()

	WithAlpha(r, 0.5, func() {
		FillRect(r, 0, 0, 10, 10, gg.White)
		WithAlpha(r, 0.5, func() {
			FillRect(r, 0, 0, 10, 10, gg.White)
		})
	})
	FillRect(r, 0, 0, 10, 10, gg.White)

	require.Len(t, r.Ops, 3)
	assert.InDelta(t, 0.5, r.Ops[0].Alpha, 1e-9)
	assert.InDelta(t, 0.25, r.Ops[1].Alpha, 1e-9)
	assert.InDelta(t, 0.25, r.Ops[1].Color.A, 1e-9)
	assert.InDelta(t, 1.0, r.Ops[2].Alpha, 1e-9)
	assert.Zero(t, r.AlphaDepth())
}

func TestWithAlphaRestoresOnPanic(t *testing.T) {
	r := NewRecorder()

	assert.Panics(t, func() {
		WithAlpha(r, 0.3, func() { panic("boom") })
	})
	assert.Zero(t, r.AlphaDepth())
	assert.Equal(t, 1.0, r.Alpha())
}

func TestRecorderTransform(t *testing.T) {
	r := NewRecorder()

	WithState(r, func() {
		r.Translate(100, 50)
		r.Scale(2, 2)
		r.MoveTo(1, 1)
		r.LineTo(3, 1)
		r.Stroke()
	})
	r.MoveTo(1, 1)
	r.LineTo(2, 2)
	r.Stroke()

	require.Equal(t, 2, r.Count(OpStroke))
	assert.Equal(t, gg.Pt(102, 52), r.Ops[0].Points[0])
	assert.Equal(t, gg.Pt(106, 52), r.Ops[0].Points[1])
	assert.Equal(t, gg.Pt(1, 1), r.Ops[1].Points[0])
	assert.Zero(t, r.StateDepth())
}

func TestRecorderFillPreserveKeepsPath(t *testing.T) {
	r := NewRecorder()
	r.DrawRectangle(0, 0, 4, 4)
	r.FillPreserve()
	r.Stroke()

	require.Len(t, r.Ops, 2)
	assert.Len(t, r.Ops[1].Points, 4)
}

func TestGradientAt(t *testing.T) {
	g := LinearGradient(0, 0, 10, 0,
		Stop{0, gg.RGBA{R: 0, A: 1}},
		Stop{1, gg.RGBA{R: 1, A: 0}},
	)

	assert.InDelta(t, 0.0, g.At(-1).R, 1e-9)
	assert.InDelta(t, 0.5, g.At(0.5).R, 1e-9)
	assert.InDelta(t, 1.0, g.At(2).R, 1e-9)
	assert.InDelta(t, 1.0, g.Peak().A, 1e-9)
	assert.Equal(t, gg.Transparent, Gradient{}.At(0.3))
}

func TestGradientColorAt(t *testing.T) {
	lin := LinearGradient(0, 0, 10, 0,
		Stop{0, gg.RGBA{R: 0, A: 1}},
		Stop{1, gg.RGBA{R: 1, A: 1}},
	)
	assert.InDelta(t, 0.3, lin.ColorAt(3, 99).R, 1e-9)
	assert.InDelta(t, 1.0, lin.ColorAt(20, 0).R, 1e-9)

	rad := RadialGradient(5, 5, 0, 10,
		Stop{0, gg.RGBA{G: 1, A: 1}},
		Stop{1, gg.RGBA{G: 1, A: 0}},
	)
	assert.InDelta(t, 1.0, rad.ColorAt(5, 5).A, 1e-9)
	assert.InDelta(t, 0.5, rad.ColorAt(5, 10).A, 1e-9)
	assert.InDelta(t, 0.0, rad.ColorAt(5, 30).A, 1e-9)
}

func TestFadeClamps(t *testing.T) {
	c := gg.RGBA{R: 1, A: 0.8}
	assert.InDelta(t, 0.4, Fade(c, 0.5).A, 1e-9)
	assert.Zero(t, Fade(c, -2).A)
	assert.InDelta(t, 0.8, Fade(c, 7).A, 1e-9)
}

func TestAlignAnchor(t *testing.T) {
	assert.Equal(t, 0.0, AlignLeft.Anchor())
	assert.Equal(t, 0.5, AlignCenter.Anchor())
	assert.Equal(t, 1.0, AlignRight.Anchor())
}

func TestRasterPaints(t *testing.T) {
	fonts, err := LoadFonts()
	require.NoError(t, err)
	defer fonts.Close()

	r := NewRaster(64, 48, fonts)
	defer r.Close()

	r.Clear(gg.Black)
	FillRect(r, 0, 0, 64, 48, gg.RGBA{R: 1, A: 1})
	Text(r, "MPC", 32, 30, SansBold, 14, gg.White, AlignCenter)
	require.NoError(t, r.Err())

	cr, cg, _, _ := r.Image().At(2, 2).RGBA()
	assert.Greater(t, cr, uint32(0xc000))
	assert.Less(t, cg, uint32(0x4000))

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestRasterAlphaLayer(t *testing.T) {
	r := NewRaster(16, 16, nil)
	defer r.Close()

	r.Clear(gg.Black)
	WithAlpha(r, 0.5, func() {
		FillRect(r, 0, 0, 16, 16, gg.White)
	})
	require.NoError(t, r.Err())

	v, _, _, _ := r.Image().At(8, 8).RGBA()
	half := float64(v) / 0xffff
	assert.True(t, math.Abs(half-0.5) < 0.1, "expected mid grey, got %.2f", half)
}
