// Package control provides the pump speed controllers compared by the
// show's charts.
//
// Controllers implement [sim.Controller] and return a single pump speed
// command in [0, 1]:
//
//   - [PID]: Proportional-Integral-Derivative with anti-windup
//   - [Predictive]: receding-horizon model predictive control
//   - [Fixed]: constant speed, the legacy booster set
//
// # Usage
//
//	plant := sim.NewBooster()
//	mpc := control.NewPredictive(plant.Model(), 0.4, 0.05)
//	s := sim.New(plant, sim.NewRK4(), mpc).WithLoopMetrics(0.4)
//	res, err := s.Run(ctx, sim.State{0.2, 0}, sim.DefaultConfig())
package control
