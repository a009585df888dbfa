// Package config holds the deepshow application settings, read from YAML
// and overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultTransition   = time.Second
	DefaultFPS          = 30
	DefaultTheme        = "neon"
	DefaultAddr         = "127.0.0.1:8080"
	DefaultRunsDir      = "runs"
	DefaultTarget       = 0.4
	DefaultKp           = 2.5
	DefaultKi           = 1.2
	DefaultKd           = 0.1
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	// Catalog is a scene catalog YAML file. Empty means the built-in show.
	Catalog  string         `yaml:"catalog"`
	LogLevel string         `yaml:"log_level"`
	RunsDir  string         `yaml:"runs_dir"`
	Playback PlaybackConfig `yaml:"playback"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
	Signal   SignalConfig   `yaml:"signal"`
}

type PlaybackConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Transition   time.Duration `yaml:"transition"`
	FPS          int           `yaml:"fps"`
	Theme        string        `yaml:"theme"`
	Autoplay     bool          `yaml:"autoplay"`
}

type RenderConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	// Workers bounds parallel painting. Zero sizes the pool from the host.
	Workers int `yaml:"workers"`
	// GIFWidth is the width GIF frames are scaled down to.
	GIFWidth int `yaml:"gif_width"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type SignalConfig struct {
	Target   float64 `yaml:"target"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
	// Horizon is the predictive controller look-ahead in seconds.
	Horizon float64 `yaml:"horizon"`
	Lambda  float64 `yaml:"lambda"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		RunsDir:  DefaultRunsDir,
		Playback: PlaybackConfig{
			TickInterval: DefaultTickInterval,
			Transition:   DefaultTransition,
			FPS:          DefaultFPS,
			Theme:        DefaultTheme,
			Autoplay:     true,
		},
		Render: RenderConfig{
			Width:    1280,
			Height:   720,
			FPS:      DefaultFPS,
			Format:   "mp4",
			Output:   "deepshow.mp4",
			GIFWidth: 480,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		Signal: SignalConfig{
			Target:   DefaultTarget,
			Dt:       0.05,
			Duration: 60,
			Kp:       DefaultKp,
			Ki:       DefaultKi,
			Kd:       DefaultKd,
			Horizon:  3,
			Lambda:   0.5,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var formats = map[string]bool{"png": true, "gif": true, "mp4": true}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Playback.TickInterval <= 0:
		return fmt.Errorf("%w: playback.tick_interval must be positive", ErrInvalid)
	case c.Playback.Transition < 0:
		return fmt.Errorf("%w: playback.transition must not be negative", ErrInvalid)
	case c.Playback.FPS <= 0 || c.Playback.FPS > 120:
		return fmt.Errorf("%w: playback.fps %d out of range 1..120", ErrInvalid, c.Playback.FPS)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	case c.Render.FPS <= 0 || c.Render.FPS > 120:
		return fmt.Errorf("%w: render.fps %d out of range 1..120", ErrInvalid, c.Render.FPS)
	case !formats[c.Render.Format]:
		return fmt.Errorf("%w: render.format %q (want png, gif or mp4)", ErrInvalid, c.Render.Format)
	case c.Render.Workers < 0:
		return fmt.Errorf("%w: render.workers must not be negative", ErrInvalid)
	case c.Signal.Dt <= 0 || c.Signal.Duration <= 0:
		return fmt.Errorf("%w: signal dt and duration must be positive", ErrInvalid)
	case c.Signal.Horizon <= 0:
		return fmt.Errorf("%w: signal.horizon must be positive", ErrInvalid)
	}
	return nil
}
