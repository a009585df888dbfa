// Package render turns the playback state into painted frames.
//
// A [Dispatcher] watches the active scene id, keeps an animation clock per
// visible scene and cross-fades between scenes when the id changes. Each
// frame is first reduced to a [Plan] (which scenes to paint, at what local
// time, alpha and scale) and then painted; plans are plain values, so the
// export pipeline can compute them sequentially and paint them in parallel.
//
// A Dispatcher is not safe for concurrent use.
package render

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
	"github.com/san-kum/deepshow/internal/scenes"
)

// DefaultTransition is the cross-fade length used when none is configured.
const DefaultTransition = time.Second

// AnimationClock is the local time of one scene, reset whenever that scene
// becomes active.
type AnimationClock struct {
	Scene int
	Time  float64
}

func (c *AnimationClock) advance(sec float64) { c.Time += sec }

// TransitionState describes a cross-fade in progress.
type TransitionState struct {
	From, To int
	Progress float64
}

// Layer is one scene to paint in a frame.
type Layer struct {
	Scene int
	Time  float64
	Alpha float64
	Scale float64
}

// Plan lists the layers of a frame, bottom first.
type Plan struct {
	Layers     []Layer
	Transition *TransitionState
}

type Option func(*Dispatcher)

// WithTransition sets the cross-fade duration. Non-positive durations
// switch scenes instantly.
func WithTransition(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.transition = d }
}

type Dispatcher struct {
	registry   *scenes.Registry
	transition time.Duration

	observed bool
	current  AnimationClock
	outgoing AnimationClock
	fade     *TransitionState

	lastNow time.Duration
	hasNow  bool
}

func New(registry *scenes.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry, transition: DefaultTransition}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Ease is the cubic ease-in-out curve used for cross-fades.
func Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	default:
		u := -2*t + 2
		return 1 - u*u*u/2
	}
}

// Observe reports the active scene id. The first call shows the scene
// directly; later changes start a cross-fade from the previous scene and
// reset the animation clock. Repeating the current id does nothing.
func (d *Dispatcher) Observe(id int) {
	if !d.observed {
		d.observed = true
		d.current = AnimationClock{Scene: id}
		return
	}
	if id == d.current.Scene {
		return
	}

	d.outgoing = d.current
	d.current = AnimationClock{Scene: id}
	if d.transition <= 0 {
		d.fade = nil
		return
	}
	d.fade = &TransitionState{From: d.outgoing.Scene, To: id}
}

// Advance moves the animation clocks and any cross-fade forward by delta.
func (d *Dispatcher) Advance(delta time.Duration) {
	if delta <= 0 {
		return
	}
	sec := delta.Seconds()
	d.current.advance(sec)

	if d.fade == nil {
		return
	}
	d.outgoing.advance(sec)
	d.fade.Progress += float64(delta) / float64(d.transition)
	if d.fade.Progress >= 1 {
		d.fade = nil
	}
}

// Current returns the active scene's clock.
func (d *Dispatcher) Current() AnimationClock { return d.current }

// Transition returns the cross-fade in progress, if any.
func (d *Dispatcher) Transition() (TransitionState, bool) {
	if d.fade == nil {
		return TransitionState{}, false
	}
	return *d.fade, true
}

// Plan returns the layers for the current frame. Nothing is planned before
// the first Observe.
func (d *Dispatcher) Plan() Plan {
	if !d.observed {
		return Plan{}
	}
	if d.fade == nil {
		return Plan{Layers: []Layer{{Scene: d.current.Scene, Time: d.current.Time, Alpha: 1, Scale: 1}}}
	}

	// Alphas follow the eased progress; the zoom is linear in raw progress.
	p := d.fade.Progress
	e := Ease(p)
	fade := *d.fade
	return Plan{
		Layers: []Layer{
			{Scene: d.outgoing.Scene, Time: d.outgoing.Time, Alpha: 1 - e, Scale: 1 - 0.1*p},
			{Scene: d.current.Scene, Time: d.current.Time, Alpha: e, Scale: 0.9 + 0.1*p},
		},
		Transition: &fade,
	}
}

// Paint draws the background and every visible layer of plan, each centered
// on the viewport and scaled about its center. A nil surface paints nothing
// and returns canvas.ErrNoSurface. Layers without a renderer are skipped and
// reported after the rest of the frame is painted.
func (d *Dispatcher) Paint(s canvas.Surface, w, h float64, plan Plan) error {
	if s == nil {
		return canvas.ErrNoSurface
	}
	draw.Background(s, w, h, scenes.Scale(w, h))

	var missing error
	for _, l := range plan.Layers {
		if l.Alpha <= 0 || math.IsNaN(l.Alpha) {
			continue
		}
		render, ok := d.registry.Lookup(l.Scene)
		if !ok {
			missing = fmt.Errorf("%w %d", scenes.ErrUnknownScene, l.Scene)
			continue
		}
		canvas.WithAlpha(s, l.Alpha, func() {
			canvas.WithState(s, func() {
				s.Translate(w/2, h/2)
				s.Scale(l.Scale, l.Scale)
				render(s, w, h, l.Time)
			})
		})
	}
	return missing
}

// Frame observes id, advances by the time elapsed since the previous
// Frame call according to now, and paints the result. The viewport size is
// read on every call.
func (d *Dispatcher) Frame(s canvas.Surface, w, h float64, id int, now time.Duration) error {
	if d.hasNow {
		d.Advance(now - d.lastNow)
	}
	d.lastNow, d.hasNow = now, true
	d.Observe(id)
	return d.Paint(s, w, h, d.Plan())
}
