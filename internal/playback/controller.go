// Package playback owns the authoritative narrative position of the show:
// which scene is current, how far into it playback is, and whether it is
// running.
//
// A [Controller] is a two state machine (Paused, Playing) advanced by
// [Controller.Tick]. It is not safe for concurrent use; wrap it in [Safe]
// when commands and ticks arrive on different goroutines.
package playback

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/deepshow/internal/scene"
)

// State is a snapshot of the playback position.
type State struct {
	SceneID int     `json:"scene"`
	Elapsed float64 `json:"elapsed"`
	Playing bool    `json:"playing"`
}

type Controller struct {
	catalog *scene.Catalog
	state   State
}

// New returns a paused controller positioned at the start of scene 1.
func New(catalog *scene.Catalog) (*Controller, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptySceneCatalog, scene.ErrEmptyCatalog)
	}
	return &Controller{
		catalog: catalog,
		state:   State{SceneID: 1},
	}, nil
}

func (c *Controller) Catalog() *scene.Catalog { return c.catalog }

func (c *Controller) State() State { return c.state }

// Scene returns the descriptor of the current scene.
func (c *Controller) Scene() scene.Scene {
	s, _ := c.catalog.Get(c.state.SceneID)
	return s
}

func (c *Controller) Play() { c.state.Playing = true }

func (c *Controller) Pause() { c.state.Playing = false }

func (c *Controller) Toggle() { c.state.Playing = !c.state.Playing }

// Tick advances narrative time by delta seconds while playing. Reaching the
// end of a scene moves to the start of the next one; reaching the end of the
// last scene clamps there and pauses. Excess time past a scene boundary is
// dropped. Non-positive and non-finite deltas are ignored.
func (c *Controller) Tick(delta float64) {
	if !c.state.Playing || !(delta > 0) || math.IsInf(delta, 1) {
		return
	}

	c.state.Elapsed += delta
	duration := c.catalog.Duration(c.state.SceneID)
	if c.state.Elapsed < duration {
		return
	}

	if c.state.SceneID < c.catalog.Len() {
		c.state.SceneID++
		c.state.Elapsed = 0
		return
	}
	c.state.Elapsed = duration
	c.state.Playing = false
}

// Next moves to the start of the following scene. No-op at the last scene.
func (c *Controller) Next() {
	if c.state.SceneID < c.catalog.Len() {
		c.state.SceneID++
		c.state.Elapsed = 0
	}
}

// Prev moves to the start of the previous scene. No-op at the first scene.
func (c *Controller) Prev() {
	if c.state.SceneID > 1 {
		c.state.SceneID--
		c.state.Elapsed = 0
	}
}

// Select jumps to the start of scene id without changing Playing. An id
// outside [1, N] returns an *InvalidSceneError and leaves the state as is.
func (c *Controller) Select(id int) error {
	if !c.catalog.Has(id) {
		return &InvalidSceneError{ID: id, Scenes: c.catalog.Len()}
	}
	c.state.SceneID = id
	c.state.Elapsed = 0
	return nil
}

// Seek moves to an absolute narrative time, clamped into [0, TotalDuration].
func (c *Controller) Seek(t float64) {
	c.state.SceneID, c.state.Elapsed = c.catalog.Locate(t)
}

// TotalDuration is the sum of every scene duration.
func (c *Controller) TotalDuration() float64 { return c.catalog.Total() }

// ElapsedTotal is the narrative time from the start of scene 1.
func (c *Controller) ElapsedTotal() float64 {
	return c.catalog.Offset(c.state.SceneID) + c.state.Elapsed
}

// Progress is the fraction of the current scene already played.
func (c *Controller) Progress() float64 {
	d := c.catalog.Duration(c.state.SceneID)
	if d <= 0 {
		return 0
	}
	return math.Min(1, c.state.Elapsed/d)
}

// IsInvalidScene reports whether err came from selecting a bad scene id.
func IsInvalidScene(err error) bool {
	return errors.Is(err, ErrInvalidSceneID)
}
