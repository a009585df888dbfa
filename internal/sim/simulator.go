package sim

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	plant      Plant
	integrator Integrator
	controller Controller
	metrics    []Metric
}

func New(plant Plant, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		plant:      plant,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run integrates from x0 for cfg.Duration. Pump commands are clamped to
// [0, 1] and reach the plant after its transport delay. On cancellation the
// partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		Pressure: make([]float64, 0, steps+1),
		Effort:   make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var line []float64
	if d, ok := s.plant.(Delayed); ok && d.Delay() > 0 {
		line = make([]float64, int(math.Round(d.Delay()/cfg.Dt)))
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		u := clamp(s.controller.Compute(x, t))
		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		result.Times = append(result.Times, t)
		result.Pressure = append(result.Pressure, x[0])
		result.Effort = append(result.Effort, u[0])

		applied := u[0]
		if len(line) > 0 {
			applied = line[0]
			copy(line, line[1:])
			line[len(line)-1] = u[0]
		}

		next := s.integrator.Step(s.plant, x, Control{applied}, t, dt)
		if cfg.ValidateState && !next.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		x = next
		t = float64(i+1) * dt
		result.StepsTaken++
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w, got %f", ErrBadStep, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w, got %f", ErrBadDuration, cfg.Duration)
	}
	return nil
}

func clamp(u Control) Control {
	v := 0.0
	if len(u) > 0 && !math.IsNaN(u[0]) {
		v = math.Max(0, math.Min(1, u[0]))
	}
	return Control{v}
}
