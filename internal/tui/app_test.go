package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/deepshow/internal/scene"
)

func newTestModel(t *testing.T, opts Options) model {
	t.Helper()
	m, err := newModel(opts)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func send(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, Options{})

	if m.player.State().SceneID != 1 {
		t.Errorf("scene = %d, want 1", m.player.State().SceneID)
	}
	if m.player.State().Playing {
		t.Error("should start paused without Autoplay")
	}
	if m.interval != 100*time.Millisecond {
		t.Errorf("interval = %v", m.interval)
	}
	if m.frame == nil || m.frame.Width < 20 {
		t.Fatal("frame not sized")
	}
}

func TestNewModelRejectsUnrenderableCatalog(t *testing.T) {
	scenes := scene.Default().Scenes()
	scenes = append(scenes, scene.Scene{ID: len(scenes) + 1, Duration: 5, Title: "extra"})
	c, err := scene.New(scenes)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newModel(Options{Catalog: c}); err == nil {
		t.Error("expected missing renderer error")
	}
}

func TestKeysDriveController(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, runes(" "))
	if !m.player.State().Playing {
		t.Error("space should play")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.player.State().SceneID; got != 2 {
		t.Errorf("after right scene = %d, want 2", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.player.State().SceneID; got != 1 {
		t.Errorf("after left scene = %d, want 1", got)
	}

	m, _ = send(t, m, runes("5"))
	if got := m.player.State().SceneID; got != 5 {
		t.Errorf("after 5 scene = %d, want 5", got)
	}

	m, _ = send(t, m, runes("9"))
	if got := m.player.State().SceneID; got != 5 {
		t.Errorf("invalid select moved to %d", got)
	}
	if m.status == "" {
		t.Error("invalid select should report a status")
	}
}

func TestSeekKeys(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, runes("]"))
	m, _ = send(t, m, runes("]"))
	if got := m.player.ElapsedTotal(); got != 10 {
		t.Errorf("elapsed = %v, want 10", got)
	}

	m, _ = send(t, m, runes("["))
	if got := m.player.ElapsedTotal(); got != 5 {
		t.Errorf("elapsed = %v, want 5", got)
	}

	for range 3 {
		m, _ = send(t, m, runes("["))
	}
	if got := m.player.ElapsedTotal(); got != 0 {
		t.Errorf("elapsed = %v, want clamp to 0", got)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPlaybackTickUsesWallDelta(t *testing.T) {
	m := newTestModel(t, Options{Autoplay: true})
	start := time.Unix(1000, 0)

	m, cmd := send(t, m, playbackTickMsg(start))
	if cmd == nil {
		t.Error("tick should reschedule")
	}
	m, _ = send(t, m, playbackTickMsg(start.Add(time.Second)))

	got := m.player.State().Elapsed
	if got < 1.09 || got > 1.11 {
		t.Errorf("elapsed = %v, want 1.1", got)
	}
}

func TestPausedTickHoldsTime(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, playbackTickMsg(time.Unix(0, 0)))
	m, _ = send(t, m, playbackTickMsg(time.Unix(5, 0)))
	if got := m.player.State().Elapsed; got != 0 {
		t.Errorf("elapsed = %v while paused", got)
	}
}

func TestFrameTickPaints(t *testing.T) {
	m := newTestModel(t, Options{})
	start := time.Unix(0, 0)

	m, _ = send(t, m, frameTickMsg(start))
	m, _ = send(t, m, frameTickMsg(start.Add(500*time.Millisecond)))

	if m.frames != 2 {
		t.Errorf("frames = %d, want 2", m.frames)
	}
	if m.clock != 500*time.Millisecond {
		t.Errorf("clock = %v", m.clock)
	}
	if m.frame.Lit() == 0 {
		t.Error("frame is blank")
	}
	if m.status != "" {
		t.Errorf("status = %q", m.status)
	}
}

func TestResizeShrinksForSignal(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 200, Height: 80})
	rows := m.frame.Height

	m, _ = send(t, m, runes("g"))
	if !m.showSignal || len(m.signal) != 2 {
		t.Fatalf("signal panel not loaded: %v", m.status)
	}
	if m.frame.Height >= rows {
		t.Errorf("frame height %d should shrink below %d", m.frame.Height, rows)
	}
}

func TestThemeCycles(t *testing.T) {
	m := newTestModel(t, Options{Theme: "ocean"})
	first := m.theme
	m, _ = send(t, m, runes("t"))
	if m.theme == first {
		t.Error("theme did not change")
	}
	for range len(m.themes) - 1 {
		m, _ = send(t, m, runes("t"))
	}
	if m.theme != first {
		t.Errorf("theme = %d after full cycle, want %d", m.theme, first)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, frameTickMsg(time.Unix(0, 0)))

	out := m.View()
	sc := m.player.Scene()
	for _, want := range []string{sc.Title, "paused", "0:00.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
