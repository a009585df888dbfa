// Package sim integrates the booster-pump pressure loop that backs the PID
// and MPC comparison charts.
//
// A [Simulator] couples a [Plant], an [Integrator] and a [Controller], feeds
// the controller's output through the plant's transport delay and records
// the outlet pressure and pump effort at every step.
package sim

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type Plant interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
}

// Delayed is implemented by plants whose input reaches them late.
type Delayed interface {
	Delay() float64
}

type Integrator interface {
	Step(p Plant, x State, u Control, t, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Dt       float64
	Duration float64
	// ValidateState stops the run at the first non-finite state.
	ValidateState bool
}

// DefaultConfig runs the loop for one minute at 20 Hz.
func DefaultConfig() Config {
	return Config{Dt: 0.05, Duration: 60, ValidateState: true}
}

type Result struct {
	Times    []float64
	Pressure []float64
	// Effort is the pump speed command, before the transport delay.
	Effort     []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
