package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is the contract shared by the strip, picker and help widgets.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}
