package draw

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/deepshow/internal/canvas"
)

func TestIsoKnownPoints(t *testing.T) {
	p := Iso(0, 0, 0)
	assert.Equal(t, gg.Pt(0, 0), p)

	p = Iso(10, 0, 0)
	assert.InDelta(t, 10*math.Sqrt(3)/2, p.X, 1e-9)
	assert.InDelta(t, 5, p.Y, 1e-9)

	p = Iso(0, 0, 7)
	assert.InDelta(t, -7, p.Y, 1e-9)
}

func TestIsoLinear(t *testing.T) {
	cases := [][2]Vec3{
		{{1, 2, 3}, {4, 5, 6}},
		{{-10, 0.5, 100}, {3, -8, -2}},
		{{1e6, -1e6, 3}, {0, 0, 0}},
	}
	for _, c := range cases {
		a, b := c[0], c[1]
		sum := a.Add(b).Project()
		pa, pb := a.Project(), b.Project()
		assert.InDelta(t, pa.X+pb.X, sum.X, 1e-6)
		assert.InDelta(t, pa.Y+pb.Y, sum.Y, 1e-6)
	}
}

func TestPhase(t *testing.T) {
	assert.Equal(t, 0.0, Phase(0))
	assert.InDelta(t, 0.25, Phase(3.25), 1e-12)
	assert.InDelta(t, 0.75, Phase(-0.25), 1e-12)

	p := Phase(1e12 + 0.5)
	assert.True(t, p >= 0 && p < 1)
}

func TestParticleFlowNeedsTwoPoints(t *testing.T) {
	r := canvas.NewRecorder()
	ParticleFlow(r, nil, 1, Colors.Neon, 1)
	ParticleFlow(r, []gg.Point{{X: 1, Y: 1}}, 1, Colors.Neon, 1)
	assert.Empty(t, r.Ops)
}

func TestParticleFlowDrawsEveryParticle(t *testing.T) {
	r := canvas.NewRecorder()
	path := []gg.Point{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}}
	ParticleFlow(r, path, 0.37, Colors.Neon, 1)

	assert.Equal(t, 2*ParticleCount, r.Count(canvas.OpFill))
}

func TestParticlePositionsLoop(t *testing.T) {
	path := []gg.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}

	at0 := ParticlePositions(path, 0)
	require.Len(t, at0, ParticleCount)
	assert.InDelta(t, 0, at0[0].X, 1e-9)
	assert.InDelta(t, 50, at0[10].X, 1e-9)

	// Whole seconds are whole loops.
	again := ParticlePositions(path, 1)
	for i := range at0 {
		assert.InDelta(t, at0[i].X, again[i].X, 1e-6)
	}
}

func TestPulseRing(t *testing.T) {
	r := canvas.NewRecorder()
	PulseRing(r, gg.Pt(0, 0), 0.125, Colors.Success, 2)

	require.Equal(t, 1, r.Count(canvas.OpStroke))
	ring := r.Ops[0]
	assert.InDelta(t, 0.75, ring.Color.A, 1e-9)

	// Radius is phase·35·k = 0.25·35·2.
	assert.InDelta(t, 17.5, math.Hypot(ring.Points[0].X, ring.Points[0].Y), 1e-9)
}

func TestBlink(t *testing.T) {
	assert.True(t, Blink(0.1))
	assert.False(t, Blink(0.5))
}

func TestChartForecastIsDashed(t *testing.T) {
	r := canvas.NewRecorder()
	ChartBox(r, Chart{X: 0, Y: 0, W: 180, H: 150, Title: "MPC", Color: Colors.Success, Wave: MPCWave, Forecast: true}, 2, 1)

	var solid, dashed int
	for _, op := range r.Ops {
		if op.Kind != canvas.OpStroke || len(op.Points) < 10 {
			continue
		}
		if op.Dashed {
			dashed++
		} else {
			solid++
		}
	}
	assert.Equal(t, 1, solid)
	assert.Equal(t, 1, dashed)
	assert.Contains(t, r.Texts(), "MPC")
}

func TestWavesBounded(t *testing.T) {
	for _, tt := range []float64{0, 1, 1e3, 1e9} {
		for u := 0.0; u < 200; u += 7 {
			assert.LessOrEqual(t, math.Abs(PIDWave(u, tt)), 50.0)
			assert.LessOrEqual(t, math.Abs(MPCWave(u, tt)), 22.0)
			assert.LessOrEqual(t, math.Abs(ImbalanceWave(u, tt)), 70.0)
		}
	}
}

func TestDeterministic(t *testing.T) {
	paint := func() []canvas.Op {
		r := canvas.NewRecorder()
		Background(r, 640, 360, 0.5)
		IsoBuilding(r, gg.Pt(200, 300), Building{Floors: 6, FloorHeight: 10, Width: 40, Depth: 40})
		TechIndicator(r, 10, 10, "Delay", "2-3s", 3.3, 0.5)
		Gauge(r, 300, 200, 40, 0.6, "Peak", "0.42 MPa", Colors.Orange, 0.5)
		return r.Ops
	}
	assert.Equal(t, paint(), paint())
}

func TestBuildingFloors(t *testing.T) {
	r := canvas.NewRecorder()
	b := Building{Floors: 10, FloorHeight: 12, Width: 90, Depth: 90}
	IsoBuilding(r, gg.Pt(0, 0), b)

	// Three faces per floor plus the accent on floors 0 and 5.
	assert.Equal(t, 30, r.Count(canvas.OpFill))
	assert.Equal(t, 32, r.Count(canvas.OpStroke))
	assert.Equal(t, 120.0, b.Height())
	assert.Less(t, b.FloorY(gg.Pt(0, 0), 10), b.FloorY(gg.Pt(0, 0), 1))
}

func TestBackgroundStartsWithClear(t *testing.T) {
	r := canvas.NewRecorder()
	Background(r, 100, 80, 1)
	require.NotEmpty(t, r.Ops)
	assert.Equal(t, canvas.OpClear, r.Ops[0].Kind)
	assert.True(t, r.Ops[1].Gradient)
}
