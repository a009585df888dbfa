package scene

import (
	"fmt"
	"math"
)

// Scene is one narrative unit of the show.
type Scene struct {
	ID          int     `yaml:"id" json:"id"`
	Duration    float64 `yaml:"duration" json:"duration"`
	Title       string  `yaml:"title" json:"title"`
	Subtitle    string  `yaml:"subtitle" json:"subtitle"`
	Description string  `yaml:"description" json:"description"`
}

// Catalog is the ordered, immutable list of scenes. Build one with New, Load
// or Default so it is validated.
type Catalog struct {
	scenes []Scene
	offset []float64
	total  float64
}

// New validates scenes and returns a catalog holding a copy of them.
func New(scenes []Scene) (*Catalog, error) {
	if err := Validate(scenes); err != nil {
		return nil, err
	}

	c := &Catalog{
		scenes: make([]Scene, len(scenes)),
		offset: make([]float64, len(scenes)),
	}
	copy(c.scenes, scenes)
	for i, s := range c.scenes {
		c.offset[i] = c.total
		c.total += s.Duration
	}
	return c, nil
}

// Validate checks the catalog invariants: at least one scene, ids 1..N in
// order, every duration positive and finite.
func Validate(scenes []Scene) error {
	if len(scenes) == 0 {
		return ErrEmptyCatalog
	}
	for i, s := range scenes {
		if s.ID != i+1 {
			return fmt.Errorf("%w: position %d has id %d", ErrSceneIDs, i+1, s.ID)
		}
		if s.Duration <= 0 || math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) {
			return fmt.Errorf("%w: scene %d has %v", ErrSceneDuration, s.ID, s.Duration)
		}
	}
	return nil
}

// Len returns N, the number of scenes.
func (c *Catalog) Len() int { return len(c.scenes) }

// Get returns the scene with the given id.
func (c *Catalog) Get(id int) (Scene, bool) {
	if !c.Has(id) {
		return Scene{}, false
	}
	return c.scenes[id-1], true
}

// Has reports whether id is in [1, N].
func (c *Catalog) Has(id int) bool { return id >= 1 && id <= len(c.scenes) }

// Duration returns the duration of scene id in seconds, or 0 if unknown.
func (c *Catalog) Duration(id int) float64 {
	if !c.Has(id) {
		return 0
	}
	return c.scenes[id-1].Duration
}

// Offset returns the narrative time at which scene id starts.
func (c *Catalog) Offset(id int) float64 {
	if id < 1 {
		return 0
	}
	if id > len(c.scenes) {
		return c.total
	}
	return c.offset[id-1]
}

// Total returns the sum of all scene durations.
func (c *Catalog) Total() float64 { return c.total }

// Locate maps an absolute narrative time to a scene id and the time elapsed
// inside it. t is clamped into [0, Total].
func (c *Catalog) Locate(t float64) (int, float64) {
	if t <= 0 || math.IsNaN(t) {
		return 1, 0
	}
	if t >= c.total {
		last := len(c.scenes)
		return last, c.scenes[last-1].Duration
	}
	for i := len(c.scenes) - 1; i >= 0; i-- {
		if t >= c.offset[i] {
			return i + 1, t - c.offset[i]
		}
	}
	return 1, t
}

// Scenes returns a copy of the scene list.
func (c *Catalog) Scenes() []Scene {
	out := make([]Scene, len(c.scenes))
	copy(out, c.scenes)
	return out
}

// IDs returns 1..N.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.scenes))
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}
