package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	host *Host
	view string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.host.windowSized(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.host.mouseMoved(msg.X, msg.Y)
	case frameMsg:
		m.view = string(msg)
	}
	return m, nil
}

func (m model) View() string {
	if m.view == "" {
		return "starting…"
	}
	return m.view
}
