package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/deepshow/internal/sim"
)

func TestGridSearchFindsMinimum(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{Span(-2, 2, 5), Span(0, 4, 5)})
	assert.Equal(t, 25, g.Size())

	calls := 0
	params, score, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		calls++
		return math.Pow(p["a"]-1, 2) + math.Pow(p["b"]-3, 2), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 25, calls)
	assert.Equal(t, 1.0, params["a"])
	assert.Equal(t, 3.0, params["b"])
	assert.Equal(t, 0.0, score)
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g := NewGridSearch([]string{"a"}, [][]float64{{1, 2, 3}})
	params, score, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		switch p["a"] {
		case 1:
			return 0, errors.New("diverged")
		case 2:
			return math.NaN(), nil
		}
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, params["a"])
	assert.Equal(t, 7.0, score)
}

func TestGridSearchAllFail(t *testing.T) {
	g := NewGridSearch([]string{"a"}, [][]float64{{1, 2}})
	_, _, err := g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, errors.New("nope")
	})
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"a"}, [][]float64{{1, 2}})
	_, _, err := g.Search(ctx, func(context.Context, map[string]float64) (float64, error) { return 0, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSpan(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Span(0, 1, 3))
	assert.Equal(t, []float64{2}, Span(2, 5, 1))
}

func TestTunePID(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Duration = 20

	res, err := TunePID(context.Background(), sim.State{0.2, 0}, cfg, 0.4, "iae",
		[]float64{0.5, 2.5}, []float64{0, 1.2}, []float64{0.1})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Evaluated)
	assert.Equal(t, "iae", res.Metric)
	assert.Greater(t, res.Score, 0.0)
	assert.Contains(t, []float64{0.5, 2.5}, res.Kp)
}

func TestTunePIDUnknownMetric(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Duration = 1
	_, err := TunePID(context.Background(), sim.State{0.2, 0}, cfg, 0.4, "bogus",
		[]float64{1}, []float64{1}, []float64{0})
	assert.ErrorIs(t, err, ErrNoCandidate)
}
