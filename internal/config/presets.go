package config

import (
	"fmt"
	"sort"
)

// Presets are named render sizes.
var Presets = map[string]RenderConfig{
	"720p":    {Width: 1280, Height: 720, FPS: 30, Format: "mp4", Output: "deepshow-720p.mp4"},
	"1080p":   {Width: 1920, Height: 1080, FPS: 30, Format: "mp4", Output: "deepshow-1080p.mp4"},
	"square":  {Width: 1080, Height: 1080, FPS: 30, Format: "mp4", Output: "deepshow-square.mp4"},
	"preview": {Width: 480, Height: 360, FPS: 12, Format: "gif", Output: "deepshow-preview.gif", GIFWidth: 480},
}

func GetPreset(name string) *RenderConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the render size, rate, format and output with the
// named preset. Workers and GIFWidth are kept unless the preset sets them.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
	}
	workers, gifWidth := c.Render.Workers, c.Render.GIFWidth
	c.Render = *p
	if c.Render.Workers == 0 {
		c.Render.Workers = workers
	}
	if c.Render.GIFWidth == 0 {
		c.Render.GIFWidth = gifWidth
	}
	return nil
}
