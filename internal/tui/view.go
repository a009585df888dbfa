package tui

import (
	"fmt"
	"strings"

	"github.com/san-kum/deepshow/internal/draw"
	"github.com/san-kum/deepshow/internal/viz"
)

// Rows used by everything except the frame and the signal panel.
const (
	chromeRows = 14
	signalRows = 12
)

func (m model) View() string {
	var b strings.Builder
	st := m.player.State()
	sc := m.player.Scene()
	s := m.styles

	b.WriteString("\n  " + viz.GradientText("DeepControl AIPC", draw.Colors.Neon, draw.Colors.Purple))
	if st.Playing {
		b.WriteString("  " + s.Playing.Render(viz.AnimatedSpinner(m.frames)+" playing"))
	} else {
		b.WriteString("  " + s.Paused.Render("❚❚ paused"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n", s.Title.Render(fmt.Sprintf("%d. %s", sc.ID, sc.Title)), s.Subtitle.Render(sc.Subtitle)))
	b.WriteString(viz.GlassPanel.Render(strings.TrimSuffix(m.frame.Render(), "\n")) + "\n")
	b.WriteString("  " + s.Body.Render(sc.Description) + "\n\n")

	total := m.player.TotalDuration()
	barWidth := max(m.frame.Width-24, 10)
	b.WriteString(fmt.Sprintf("  %s  %s / %s   scene %s / %s\n",
		viz.ProgressBar(m.player.ElapsedTotal()/total, barWidth),
		viz.MetricValue.Render(viz.Clock(m.player.ElapsedTotal())),
		viz.MetricLabel.Render(viz.Clock(total)),
		viz.MetricValue.Render(fmt.Sprintf("%.1fs", st.Elapsed)),
		viz.MetricLabel.Render(fmt.Sprintf("%.0fs", sc.Duration)),
	))

	var list []string
	for _, item := range m.player.Catalog().Scenes() {
		label := fmt.Sprintf("%d %s", item.ID, item.Title)
		if item.ID == st.SceneID {
			list = append(list, s.Active.Render("▸ "+label))
		} else {
			list = append(list, s.Muted.Render("  "+label))
		}
	}
	b.WriteString("  " + strings.Join(list, "  ") + "\n")

	if m.showSignal && m.signal != nil {
		b.WriteString("\n" + viz.Plot("outlet pressure (MPa)  red: PID  green: MPC", m.frame.Width-12, signalRows-4, m.signal...) + "\n")
	}

	b.WriteString("\n" + viz.Separator(m.frame.Width) + "\n")
	if m.status != "" {
		b.WriteString("  " + s.Paused.Render(m.status) + "\n")
	}
	b.WriteString(viz.KeyHint.Render("  space play/pause  ←→ scene  1-9 jump  [ ] seek  g signal  t theme  q quit") + "\n")

	return b.String()
}
