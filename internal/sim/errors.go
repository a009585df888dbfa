package sim

import (
	"errors"
	"fmt"
)

var (
	ErrBadStep     = errors.New("sim: dt must be positive")
	ErrBadDuration = errors.New("sim: duration must be positive")
)

// SimError reports a step that produced an unusable state.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim: step %d (t=%.3f): %s", e.Step, e.Time, e.Message)
}
