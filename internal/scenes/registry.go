// Package scenes holds the procedural renderers for each slide of the show.
//
// A [Renderer] paints one scene at a given local animation time. Renderers
// are pure functions of their arguments: they read no global state, keep
// nothing between calls and never touch the surface's alpha stack, so the
// dispatcher can cross-fade two of them by wrapping each in a scoped alpha.
package scenes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/scene"
)

// ErrUnknownScene is returned for scene ids that have no renderer.
var ErrUnknownScene = errors.New("scenes: no renderer for scene")

// Renderer paints a scene on s for a w×h viewport whose origin has been
// moved to the viewport center. t is the scene's local animation time in
// seconds.
type Renderer func(s canvas.Surface, w, h, t float64)

type entry struct {
	name   string
	render Renderer
}

// Registry maps scene ids to renderers.
type Registry struct {
	entries map[int]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]entry)}
}

// Default returns a registry with renderers for scenes 1 through 6.
func Default() *Registry {
	r := NewRegistry()
	r.Register(1, "pain-points", PainPoints)
	r.Register(2, "intro", Intro)
	r.Register(3, "sensing", Sensing)
	r.Register(4, "results", Results)
	r.Register(5, "schedule", Schedule)
	r.Register(6, "mpc", Predictive)
	return r
}

// Register binds fn to id, replacing any previous renderer.
func (r *Registry) Register(id int, name string, fn Renderer) {
	r.entries[id] = entry{name: name, render: fn}
}

// Lookup returns the renderer for id.
func (r *Registry) Lookup(id int) (Renderer, bool) {
	e, ok := r.entries[id]
	if !ok || e.render == nil {
		return nil, false
	}
	return e.render, true
}

// Name returns the short name id was registered under.
func (r *Registry) Name(id int) string {
	return r.entries[id].name
}

// IDs lists registered scene ids in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Validate checks that every scene in c has a renderer.
func (r *Registry) Validate(c *scene.Catalog) error {
	for _, id := range c.IDs() {
		if _, ok := r.Lookup(id); !ok {
			return fmt.Errorf("%w %d", ErrUnknownScene, id)
		}
	}
	return nil
}
