package control

import (
	"math"

	"github.com/san-kum/deepshow/internal/sim"
)

type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64
	// Min and Max bound the output. The integral is frozen while the
	// output is saturated.
	Min, Max float64

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		Min:    0,
		Max:    1,
		first:  true,
	}
}

// NewTunedPID returns the aggressive tuning shown oscillating on the
// comparison chart.
func NewTunedPID(target float64) *PID {
	return NewPID(2.5, 1.2, 0.1, target)
}

func (p *PID) Compute(x sim.State, t float64) sim.Control {
	if len(x) < 1 {
		return sim.Control{0}
	}

	err := p.Target - x[0]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return sim.Control{p.limit(p.Kp * err)}
	}

	dt := t - p.prevT
	if dt <= 0 {
		return sim.Control{p.limit(p.Kp*err + p.Ki*p.integral)}
	}

	derivative := (err - p.prevErr) / dt
	integral := p.integral + err*dt
	u := p.Kp*err + p.Ki*integral + p.Kd*derivative
	if lim := p.limit(u); lim == u {
		p.integral = integral
	} else {
		u = lim
	}

	p.prevErr = err
	p.prevT = t
	return sim.Control{u}
}

func (p *PID) limit(u float64) float64 {
	if p.Max > p.Min {
		return math.Max(p.Min, math.Min(p.Max, u))
	}
	return u
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// Params returns the tunable gains.
func (p *PID) Params() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
	}
}

// SetParam adjusts one gain by name; unknown names are ignored.
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	}
}
