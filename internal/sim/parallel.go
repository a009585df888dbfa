package sim

import (
	"context"
	"sync"
)

// RunAll runs every simulator from the same initial state concurrently.
// Simulators must not share integrators or controllers.
func RunAll(ctx context.Context, x0 State, cfg Config, sims ...*Simulator) ([]*Result, error) {
	results := make([]*Result, len(sims))
	errs := make([]error, len(sims))

	var wg sync.WaitGroup
	for i, s := range sims {
		wg.Add(1)
		go func(idx int, s *Simulator) {
			defer wg.Done()
			results[idx], errs[idx] = s.Run(ctx, x0, cfg)
		}(i, s)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
