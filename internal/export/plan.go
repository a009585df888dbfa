package export

import (
	"math"
	"time"

	"github.com/san-kum/deepshow/internal/clock"
	"github.com/san-kum/deepshow/internal/playback"
	"github.com/san-kum/deepshow/internal/render"
	"github.com/san-kum/deepshow/internal/scene"
	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/storage"
)

// Frame is one planned output frame.
type Frame struct {
	Index int
	// Time is the narrative time at the start of the frame.
	Time    float64
	Scene   int
	Elapsed float64
	Plan    render.Plan
}

// Record converts f into a timeline row.
func (f Frame) Record() storage.FrameRecord {
	r := storage.FrameRecord{Frame: f.Index, Time: f.Time, Scene: f.Scene, Elapsed: f.Elapsed}
	if tr := f.Plan.Transition; tr != nil {
		r.From, r.To, r.Progress = tr.From, tr.To, tr.Progress
	}
	return r
}

// PlanFrames plays the whole show at a fixed frame rate and returns the
// dispatcher plan for every frame. Frame i shows narrative time i/fps, except
// the final frame, which shows the show's end state: the last scene at its
// full duration, paused. Planning is inherently sequential; the returned
// dispatcher is only needed for painting, which is safe to do concurrently
// once planning is done.
func PlanFrames(catalog *scene.Catalog, registry *scenes.Registry, fps int, transition time.Duration) ([]Frame, *render.Dispatcher, error) {
	ctl, err := playback.New(catalog)
	if err != nil {
		return nil, nil, err
	}
	ctl.Play()
	d := render.New(registry, render.WithTransition(transition))

	stepper := clock.NewStepper(fps)
	n := max(1, int(math.Round(catalog.Total()*float64(fps))))

	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		if i == n-1 && n > 1 {
			ctl.Seek(catalog.Total())
			ctl.Pause()
		}
		st := ctl.State()
		d.Observe(st.SceneID)
		frames = append(frames, Frame{
			Index:   i,
			Time:    ctl.ElapsedTotal(),
			Scene:   st.SceneID,
			Elapsed: st.Elapsed,
			Plan:    d.Plan(),
		})

		// Seek to the exact frame time; Tick would drop the overshoot at
		// every scene boundary.
		last := stepper.Now()
		now := stepper.Next()
		ctl.Seek(now.Seconds())
		d.Advance(now - last)
	}
	return frames, d, nil
}
