package sim

import "math"

// IAE is the integral of absolute set-point error.
type IAE struct {
	Target float64
	sum    float64
	prevT  float64
	prevE  float64
	seen   bool
}

func NewIAE(target float64) *IAE { return &IAE{Target: target} }

func (m *IAE) Name() string { return "iae" }

func (m *IAE) Observe(x State, _ Control, t float64) {
	e := math.Abs(m.Target - x[0])
	if m.seen {
		m.sum += (e + m.prevE) / 2 * (t - m.prevT)
	}
	m.prevT, m.prevE, m.seen = t, e, true
}

func (m *IAE) Value() float64 { return m.sum }
func (m *IAE) Reset()         { *m = IAE{Target: m.Target} }

// Overshoot is the peak excursion past the target as a percentage of the
// initial distance to it.
type Overshoot struct {
	Target float64
	start  float64
	peak   float64
	seen   bool
}

func NewOvershoot(target float64) *Overshoot { return &Overshoot{Target: target} }

func (m *Overshoot) Name() string { return "overshoot" }

func (m *Overshoot) Observe(x State, _ Control, _ float64) {
	if !m.seen {
		m.start, m.seen = x[0], true
	}
	dir := 1.0
	if m.start > m.Target {
		dir = -1
	}
	m.peak = math.Max(m.peak, dir*(x[0]-m.Target))
}

func (m *Overshoot) Value() float64 {
	span := math.Abs(m.Target - m.start)
	if span == 0 {
		return 0
	}
	return m.peak / span * 100
}

func (m *Overshoot) Reset() { *m = Overshoot{Target: m.Target} }

// Settling is the last time the pressure was outside ±Band·|target| of the
// target.
type Settling struct {
	Target float64
	Band   float64
	last   float64
}

func NewSettling(target float64) *Settling { return &Settling{Target: target, Band: 0.02} }

func (m *Settling) Name() string { return "settling" }

func (m *Settling) Observe(x State, _ Control, t float64) {
	if math.Abs(x[0]-m.Target) > m.Band*math.Abs(m.Target) {
		m.last = t
	}
}

func (m *Settling) Value() float64 { return m.last }
func (m *Settling) Reset()         { m.last = 0 }

// Effort is the mean pump speed command.
type Effort struct {
	sum     float64
	samples int
}

func NewEffort() *Effort { return &Effort{} }

func (m *Effort) Name() string { return "effort" }

func (m *Effort) Observe(_ State, u Control, _ float64) {
	for _, v := range u {
		m.sum += math.Abs(v)
	}
	m.samples++
}

func (m *Effort) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Effort) Reset() { *m = Effort{} }

// WithLoopMetrics attaches the standard pressure-loop metrics for target.
func (s *Simulator) WithLoopMetrics(target float64) *Simulator {
	s.AddMetric(NewIAE(target))
	s.AddMetric(NewOvershoot(target))
	s.AddMetric(NewSettling(target))
	s.AddMetric(NewEffort())
	return s
}
