package strip

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/zones/pkg/scroll"
	"tableflip.dev/zones/pkg/timeline"
	"tableflip.dev/zones/pkg/tui/theme"
	"tableflip.dev/zones/pkg/tui/ui"
)

// BlockWidth is the number of cells one hour block occupies.
const BlockWidth = 7

// Height is the number of rows a strip renders.
const Height = 2

// Model renders one timeline as a horizontally scrollable strip of hour
// blocks. Its viewport is the Surface registered with the scroll
// synchronizer.
type Model struct {
	theme theme.BlockTheme
	tl    timeline.Timeline
	vp    *scroll.Viewport
	width int
}

var _ ui.Component = (*Model)(nil)

// New constructs an empty strip.
func New(th theme.BlockTheme) *Model {
	return &Model{theme: th, vp: &scroll.Viewport{}}
}

// Viewport exposes the scroll surface.
func (m *Model) Viewport() *scroll.Viewport { return m.vp }

// Timeline returns the timeline currently shown.
func (m *Model) Timeline() timeline.Timeline { return m.tl }

// SetTimeline swaps the projected blocks while keeping the scroll offset.
func (m *Model) SetTimeline(tl timeline.Timeline) {
	m.tl = tl
	m.resize()
}

// SetSize sets the visible width. Height is fixed.
func (m *Model) SetSize(width, _ int) {
	m.width = max(width, 0)
	m.resize()
}

func (m *Model) resize() {
	m.vp.Resize(float64(len(m.tl.Blocks)*BlockWidth), float64(m.width))
}

// ScrollBlocks moves the window by n whole blocks.
func (m *Model) ScrollBlocks(n int) {
	m.vp.ScrollBy(float64(n * BlockWidth))
}

// EnsureVisible scrolls the minimum amount that brings block idx into view.
func (m *Model) EnsureVisible(idx int) {
	if idx < 0 || idx >= len(m.tl.Blocks) || m.width <= 0 {
		return
	}
	start := idx * BlockWidth
	end := start + BlockWidth
	col := m.vp.Column()
	switch {
	case start < col:
		m.vp.SetScrollOffset(float64(start))
	case end > col+m.width:
		m.vp.SetScrollOffset(float64(end - m.width))
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls on horizontal wheel events.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if wheel, ok := msg.(tea.MouseWheelMsg); ok {
		switch wheel.Mouse().Button {
		case tea.MouseWheelLeft:
			m.ScrollBlocks(-1)
		case tea.MouseWheelRight:
			m.ScrollBlocks(1)
		}
	}
	return m, nil
}

// View renders the visible window of the strip.
func (m *Model) View() string {
	if len(m.tl.Blocks) == 0 || m.width <= 0 {
		return ""
	}
	times := make([]string, 0, len(m.tl.Blocks))
	hours := make([]string, 0, len(m.tl.Blocks))
	for _, blk := range m.tl.Blocks {
		s := m.theme.Style(blk, BlockWidth)
		times = append(times, s.Render(blk.TimeLabel))
		hours = append(hours, s.Render(blk.HourLabel))
	}
	col := m.vp.Column()
	rows := []string{strings.Join(times, ""), strings.Join(hours, "")}
	for i, row := range rows {
		rows[i] = ansi.Cut(row, col, col+m.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
