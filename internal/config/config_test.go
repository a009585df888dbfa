package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Playback.TickInterval != 100*time.Millisecond {
		t.Errorf("expected 100ms tick, got %v", cfg.Playback.TickInterval)
	}
	if cfg.Catalog != "" {
		t.Error("default should use the built-in catalog")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepshow.yaml")
	doc := "playback:\n  transition: 250ms\nrender:\n  format: gif\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Playback.Transition != 250*time.Millisecond {
		t.Errorf("transition = %v", cfg.Playback.Transition)
	}
	if cfg.Render.Format != "gif" {
		t.Errorf("format = %q", cfg.Render.Format)
	}
	if cfg.Playback.TickInterval != DefaultTickInterval {
		t.Errorf("tick interval lost default: %v", cfg.Playback.TickInterval)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("addr lost default: %q", cfg.Server.Addr)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Playback.Theme = "ocean"
	cfg.Render.Workers = 3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Playback.Theme != "ocean" || got.Render.Workers != 3 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Playback.Transition != cfg.Playback.Transition {
		t.Errorf("transition = %v", got.Playback.Transition)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("render: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tick", func(c *Config) { c.Playback.TickInterval = 0 }},
		{"transition", func(c *Config) { c.Playback.Transition = -time.Second }},
		{"fps", func(c *Config) { c.Playback.FPS = 0 }},
		{"size", func(c *Config) { c.Render.Width = 0 }},
		{"render fps", func(c *Config) { c.Render.FPS = 500 }},
		{"format", func(c *Config) { c.Render.Format = "avi" }},
		{"workers", func(c *Config) { c.Render.Workers = -1 }},
		{"signal", func(c *Config) { c.Signal.Dt = 0 }},
		{"horizon", func(c *Config) { c.Signal.Horizon = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestZeroTransitionIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Playback.Transition = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("instant cuts should be allowed: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("1080p")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Width != 1920 || p.Height != 1080 {
		t.Errorf("unexpected size %dx%d", p.Width, p.Height)
	}

	p.Width = 1
	if Presets["1080p"].Width != 1920 {
		t.Error("GetPreset should return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"1080p", "720p", "preview", "square"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("presets[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Workers = 2

	if err := cfg.ApplyPreset("preview"); err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Format != "gif" || cfg.Render.FPS != 12 {
		t.Errorf("preset not applied: %+v", cfg.Render)
	}
	if cfg.Render.Workers != 2 {
		t.Errorf("workers = %d, want kept 2", cfg.Render.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset config invalid: %v", err)
	}

	if err := cfg.ApplyPreset("8k"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
