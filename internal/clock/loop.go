package clock

import (
	"context"
	"errors"
	"time"
)

var ErrBadInterval = errors.New("clock: interval must be positive")

// TickFunc receives the current timestamp and the time since the previous
// call. The first call reports a zero delta.
type TickFunc func(now, delta time.Duration) error

// Loop calls fn every interval until ctx is done or fn returns an error.
// The ticker is released on every exit path.
func Loop(ctx context.Context, src Source, interval time.Duration, fn TickFunc) error {
	if interval <= 0 {
		return ErrBadInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := src.Now()
	if err := fn(last, 0); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := src.Now()
			delta := now - last
			if delta < 0 {
				delta = 0
			}
			last = now
			if err := fn(now, delta); err != nil {
				return err
			}
		}
	}
}

// Stepper produces evenly spaced timestamps for offline rendering, where the
// wall clock must not influence the output. Timestamps are computed from the
// frame count, so rounding in Step never accumulates.
type Stepper struct {
	// Step is the nominal frame interval, truncated to whole nanoseconds.
	Step  time.Duration
	fps   int
	frame int
	now   time.Duration
}

// NewStepper returns a Stepper advancing 1/fps per frame.
func NewStepper(fps int) *Stepper {
	if fps <= 0 {
		fps = 30
	}
	return &Stepper{Step: time.Second / time.Duration(fps), fps: fps}
}

func (s *Stepper) Now() time.Duration { return s.now }

// Frame is the number of steps taken so far.
func (s *Stepper) Frame() int { return s.frame }

// Next advances by one step and returns the new timestamp, frame·1s/fps.
func (s *Stepper) Next() time.Duration {
	s.frame++
	s.now = time.Duration(s.frame) * time.Second / time.Duration(s.fps)
	return s.now
}
