// Package tui is the terminal presentation shell: a bubbletea program that
// plays the show with a braille preview of every frame.
//
// Playback and painting run on separate ticks. The playback tick advances
// the controller every 100 ms; the frame tick paints at the configured
// frame rate from whatever state the controller is in.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/deepshow/internal/control"
	"github.com/san-kum/deepshow/internal/playback"
	"github.com/san-kum/deepshow/internal/render"
	"github.com/san-kum/deepshow/internal/scene"
	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/sim"
	"github.com/san-kum/deepshow/internal/viz"
)

const seekStep = 5.0

// Options configure the shell. A zero Transition cuts between scenes.
type Options struct {
	Catalog  *scene.Catalog
	Registry *scenes.Registry

	TickInterval time.Duration
	FPS          int
	Transition   time.Duration
	Theme        string
	Autoplay     bool
}

type playbackTickMsg time.Time
type frameTickMsg time.Time

type model struct {
	player     *playback.Controller
	dispatcher *render.Dispatcher
	frame      *viz.Braille

	interval time.Duration
	fps      int
	themes   []string
	theme    int
	styles   viz.Styles

	lastTick  time.Time
	lastFrame time.Time
	clock     time.Duration
	frames    int

	signal     []viz.Series
	showSignal bool
	status     string

	width, height int
}

func newModel(opts Options) (model, error) {
	if opts.Registry == nil {
		opts.Registry = scenes.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = scene.Default()
	}
	if err := opts.Registry.Validate(opts.Catalog); err != nil {
		return model{}, err
	}
	player, err := playback.New(opts.Catalog)
	if err != nil {
		return model{}, err
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = playback.DefaultTickInterval
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	m := model{
		player:     player,
		dispatcher: render.New(opts.Registry, render.WithTransition(opts.Transition)),
		interval:   opts.TickInterval,
		fps:        opts.FPS,
		themes:     viz.ThemeNames(),
		width:      100,
		height:     40,
	}
	for i, name := range m.themes {
		if name == opts.Theme {
			m.theme = i
		}
	}
	m.styles = viz.GetTheme(m.themes[m.theme]).Styles()
	m.resize(m.width, m.height)
	if opts.Autoplay {
		player.Play()
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(playbackTick(m.interval), frameTick(m.fps))
}

func playbackTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return playbackTickMsg(t) })
}

func frameTick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return frameTickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case playbackTickMsg:
		now := time.Time(msg)
		delta := m.interval
		if !m.lastTick.IsZero() {
			delta = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.player.Tick(delta.Seconds())
		return m, playbackTick(m.interval)
	case frameTickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.clock += now.Sub(m.lastFrame)
		}
		m.lastFrame = now
		m.paint()
		return m, frameTick(m.fps)
	}
	return m, nil
}

func (m *model) paint() {
	w, h := float64(m.frame.PixelWidth()), float64(m.frame.PixelHeight())
	if err := m.dispatcher.Frame(m.frame, w, h, m.player.State().SceneID, m.clock); err != nil {
		m.status = err.Error()
	}
	m.frames++
}

// resize fits the braille frame to the terminal, keeping the 4:3 design
// aspect when there is room for it.
func (m *model) resize(width, height int) {
	m.width, m.height = width, height

	cols := max(width-4, 20)
	rows := max(height-chromeRows, 6)
	if m.showSignal {
		rows = max(rows-signalRows, 6)
	}
	// A cell is 2×4 dots and roughly twice as tall as it is wide.
	if want := cols * 2 * 3 / 4 / 4; want < rows {
		rows = want
	}
	m.frame = viz.NewBraille(cols, rows)
}

func (m *model) loadSignal() error {
	if m.signal != nil {
		return nil
	}
	cfg := sim.DefaultConfig()
	const target = 0.4
	pidPlant, mpcPlant := sim.NewBooster(), sim.NewBooster()
	res, err := sim.RunAll(context.Background(), sim.State{0.2, 0}, cfg,
		sim.New(pidPlant, sim.NewRK4(), control.NewTunedPID(target)).WithLoopMetrics(target),
		sim.New(mpcPlant, sim.NewRK4(), control.NewPredictive(mpcPlant.Model(), target, cfg.Dt)).WithLoopMetrics(target),
	)
	if err != nil {
		return fmt.Errorf("signal: %w", err)
	}
	m.signal = []viz.Series{
		{Name: "PID", Data: res[0].Pressure, Color: asciigraph.Red},
		{Name: "MPC", Data: res[1].Pressure, Color: asciigraph.Green},
	}
	return nil
}

// Run starts the shell and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
