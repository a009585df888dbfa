// Package analysis characterizes simulated pressure traces in the
// frequency domain.
//
//   - [Spectrum]: magnitude spectrum of a uniformly sampled trace
//   - [Dominant]: the strongest oscillation in a trace
//
// A trace that hunts around its set point has a clear spectral peak at the
// hunting frequency; a well damped trace does not:
//
//	osc, ok := analysis.Dominant(result.Pressure, cfg.Dt)
//	if ok {
//	    fmt.Printf("hunting every %.1fs\n", osc.Period)
//	}
package analysis
