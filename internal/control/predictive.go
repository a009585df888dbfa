package control

import (
	"math"

	"github.com/san-kum/deepshow/internal/sim"
)

// Predictive is a receding-horizon controller. Every call it predicts the
// pressure over the horizon with an internal model, picks the constant
// speed that minimises squared set-point error plus a move penalty, and
// applies it. The gap between measured and modelled pressure is carried as
// a bias so constant unmodelled demand does not leave an offset.
type Predictive struct {
	Target float64
	// Horizon is the prediction length in seconds.
	Horizon float64
	// Lambda weighs speed changes against tracking error.
	Lambda float64

	model   *sim.Booster
	dt      float64
	euler   sim.Euler
	xm      sim.State
	pending []float64
	prev    float64
	started bool
}

// NewPredictive controls a plant described by model, sampled every dt
// seconds.
func NewPredictive(model *sim.Booster, target, dt float64) *Predictive {
	return &Predictive{
		Target:  target,
		Horizon: 3,
		Lambda:  0.5,
		model:   model,
		dt:      dt,
		pending: make([]float64, int(math.Round(model.Delay()/dt))),
	}
}

func (p *Predictive) Compute(x sim.State, t float64) sim.Control {
	if len(x) < 2 || p.dt <= 0 {
		return sim.Control{p.prev}
	}
	if !p.started {
		p.xm = x.Clone()
		p.started = true
	}

	bias := x[0] - p.xm[0]
	steps := int(math.Max(1, math.Round(p.Horizon/p.dt)))

	free := p.xm.Clone()
	step := sim.State{0, 0}
	var num, den float64
	for i := 0; i < steps; i++ {
		queued, unit := 0.0, 1.0
		if i < len(p.pending) {
			queued, unit = p.pending[i], 0
		}
		free = p.euler.Step(p.model, free, sim.Control{queued}, t, p.dt)
		step = p.euler.Step(p.model, step, sim.Control{unit}, t, p.dt)

		g := step[0]
		num += g * (p.Target - bias - free[0])
		den += g * g
	}

	u := p.prev
	if den+p.Lambda > 0 {
		u = (num + p.Lambda*p.prev) / (den + p.Lambda)
	}
	u = math.Max(0, math.Min(1, u))

	applied := u
	if len(p.pending) > 0 {
		applied = p.pending[0]
		copy(p.pending, p.pending[1:])
		p.pending[len(p.pending)-1] = u
	}
	p.xm = p.euler.Step(p.model, p.xm, sim.Control{applied}, t, p.dt)
	p.prev = u

	return sim.Control{u}
}

// Reset forgets the internal model state and queued commands.
func (p *Predictive) Reset() {
	for i := range p.pending {
		p.pending[i] = 0
	}
	p.xm = nil
	p.prev = 0
	p.started = false
}
