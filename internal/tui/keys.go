package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/deepshow/internal/viz"
)

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.status = ""
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		m.player.Toggle()
	case "right", "l", "n":
		m.player.Next()
	case "left", "h":
		m.player.Prev()
	case "[":
		m.player.Seek(m.player.ElapsedTotal() - seekStep)
	case "]":
		m.player.Seek(m.player.ElapsedTotal() + seekStep)
	case "home":
		m.player.Seek(0)
	case "g":
		if err := m.loadSignal(); err != nil {
			m.status = err.Error()
			break
		}
		m.showSignal = !m.showSignal
		m.resize(m.width, m.height)
	case "t":
		m.theme = (m.theme + 1) % len(m.themes)
		m.styles = viz.GetTheme(m.themes[m.theme]).Styles()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if err := m.player.Select(int(key[0] - '0')); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}
