package optim

import (
	"context"
	"fmt"

	"github.com/san-kum/deepshow/internal/control"
	"github.com/san-kum/deepshow/internal/sim"
)

// TuneResult is the best PID gain set found for the booster pump.
type TuneResult struct {
	Kp, Ki, Kd float64
	Metric     string
	Score      float64
	Evaluated  int
}

// TunePID grid searches PID gains on the booster model from x0 and returns
// the set with the lowest value of metric, one of the loop metrics
// registered by sim.WithLoopMetrics.
func TunePID(ctx context.Context, x0 sim.State, cfg sim.Config, target float64, metric string, kp, ki, kd []float64) (*TuneResult, error) {
	grid := NewGridSearch([]string{"kp", "ki", "kd"}, [][]float64{kp, ki, kd})
	evaluated := 0

	params, score, err := grid.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		evaluated++
		s := sim.New(sim.NewBooster(), sim.NewRK4(), control.NewPID(p["kp"], p["ki"], p["kd"], target)).
			WithLoopMetrics(target)
		res, err := s.Run(ctx, x0, cfg)
		if err != nil {
			return 0, err
		}
		if len(res.Errors) > 0 {
			return 0, res.Errors[0]
		}
		v, ok := res.Metrics[metric]
		if !ok {
			return 0, fmt.Errorf("unknown metric %q", metric)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	return &TuneResult{
		Kp:        params["kp"],
		Ki:        params["ki"],
		Kd:        params["kd"],
		Metric:    metric,
		Score:     score,
		Evaluated: evaluated,
	}, nil
}
