package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/zones/pkg/tui/ui"
)

//go:embed help.txt
var helpText string

// Model renders the key reference inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	frame    lipgloss.Style
	width    int
	height   int
}

var _ ui.Component = (*Model)(nil)

// New constructs a help overlay sized to the provided bounds.
func New(frame lipgloss.Style, width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	vp.SetContent(strings.TrimRight(helpText, "\n"))
	m := &Model{viewport: vp, frame: frame}
	m.SetSize(width, height)
	return m
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help content inside the frame.
func (m *Model) View() string {
	return m.frame.Width(m.width).Render(m.viewport.View())
}

// SetSize fits the overlay to the screen, never smaller than a usable box.
func (m *Model) SetSize(width, height int) {
	lines := strings.Count(helpText, "\n")
	width = max(width, 32)
	height = max(min(height, lines+m.frame.GetVerticalFrameSize()), 6)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(width-m.frame.GetHorizontalFrameSize(), 1))
	m.viewport.SetHeight(max(height-m.frame.GetVerticalFrameSize(), 1))
}
