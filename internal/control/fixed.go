package control

import "github.com/san-kum/deepshow/internal/sim"

// Fixed runs the pump at a constant speed regardless of pressure.
type Fixed struct {
	Speed float64
}

func NewFixed(speed float64) *Fixed {
	return &Fixed{Speed: speed}
}

func (f *Fixed) Compute(sim.State, float64) sim.Control {
	return sim.Control{f.Speed}
}
