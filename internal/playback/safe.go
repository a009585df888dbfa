package playback

import (
	"sync"

	"github.com/san-kum/deepshow/internal/scene"
)

// Safe serializes access to a Controller. Readers get snapshot copies.
type Safe struct {
	mu sync.RWMutex
	c  *Controller
}

func NewSafe(c *Controller) *Safe {
	return &Safe{c: c}
}

// Snapshot is a consistent view of the controller at one instant.
type Snapshot struct {
	State
	Total    float64     `json:"total"`
	Position float64     `json:"position"`
	Scene    scene.Scene `json:"current"`
}

func (s *Safe) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:    s.c.State(),
		Total:    s.c.TotalDuration(),
		Position: s.c.ElapsedTotal(),
		Scene:    s.c.Scene(),
	}
}

func (s *Safe) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.State()
}

func (s *Safe) Catalog() *scene.Catalog { return s.c.Catalog() }

func (s *Safe) Tick(delta float64) { s.do(func(c *Controller) { c.Tick(delta) }) }
func (s *Safe) Play()              { s.do((*Controller).Play) }
func (s *Safe) Pause()             { s.do((*Controller).Pause) }
func (s *Safe) Toggle()            { s.do((*Controller).Toggle) }
func (s *Safe) Next()              { s.do((*Controller).Next) }
func (s *Safe) Prev()              { s.do((*Controller).Prev) }
func (s *Safe) Seek(t float64)     { s.do(func(c *Controller) { c.Seek(t) }) }

func (s *Safe) Select(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Select(id)
}

func (s *Safe) do(fn func(*Controller)) {
	s.mu.Lock()
	fn(s.c)
	s.mu.Unlock()
}
