package sim

// Booster models the outlet pressure of a variable-speed booster pump as a
// second-order lag driven by the pump speed command (0 to 1) and loaded by
// the building's demand. State is [pressure MPa, dpressure/dt].
//
//	τ²p'' + 2ζτp' + p = K·u(t-delay) - demand(t)
type Booster struct {
	Gain float64 // MPa at full speed with no demand
	Tau  float64 // s
	Zeta float64
	Lag  float64 // transport delay, s
	Load func(t float64) float64
}

// NewBooster returns the pump set used by the comparison charts.
func NewBooster() *Booster {
	return &Booster{Gain: 0.8, Tau: 1.2, Zeta: 0.35, Lag: 0.8, Load: StepDemand(0.05, 0.12, 20)}
}

// StepDemand is a load that jumps from before to after at time at.
func StepDemand(before, after, at float64) func(float64) float64 {
	return func(t float64) float64 {
		if t < at {
			return before
		}
		return after
	}
}

func (b *Booster) StateDim() int  { return 2 }
func (b *Booster) Delay() float64 { return b.Lag }

func (b *Booster) Demand(t float64) float64 {
	if b.Load == nil {
		return 0
	}
	return b.Load(t)
}

func (b *Booster) Derivative(x State, u Control, t float64) State {
	in := 0.0
	if len(u) > 0 {
		in = u[0]
	}
	forcing := b.Gain*in - b.Demand(t)
	acc := (forcing - x[0] - 2*b.Zeta*b.Tau*x[1]) / (b.Tau * b.Tau)
	return State{x[1], acc}
}

// Model returns a copy of b without its load, as a controller would know it.
func (b *Booster) Model() *Booster {
	m := *b
	m.Load = nil
	return &m
}
