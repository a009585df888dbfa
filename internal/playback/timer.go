package playback

import (
	"context"
	"time"

	"github.com/san-kum/deepshow/internal/clock"
)

// DefaultTickInterval is the playback polling period. It is independent of
// the render frame rate.
const DefaultTickInterval = 100 * time.Millisecond

// Ticker is the command surface RunTimer drives.
type Ticker interface {
	Tick(delta float64)
	State() State
}

// RunTimer ticks p with the real time elapsed between polls until ctx is
// done. onTick, if set, is called after each tick with the new state.
func RunTimer(ctx context.Context, p Ticker, src clock.Source, interval time.Duration, onTick func(State)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return clock.Loop(ctx, src, interval, func(_, delta time.Duration) error {
		if delta == 0 {
			return nil
		}
		p.Tick(delta.Seconds())
		if onTick != nil {
			onTick(p.State())
		}
		return nil
	})
}
