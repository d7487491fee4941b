package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/zones/pkg/tui/components/strip"
	"tableflip.dev/zones/pkg/tui/theme"
	"tableflip.dev/zones/pkg/tui/ui/overlay"
	"tableflip.dev/zones/pkg/zoneinfo"
)

const (
	headerHeight = 1
	footerHeight = 2
)

func cardHeight(th theme.Theme) int {
	return th.Card.Frame.GetVerticalFrameSize() + 2 + strip.Height
}

var footerHelp = map[Layout]string{
	LayoutEdit: "j/k focus · h/l scroll · </> hour · a add · e name · z zone · d delete · s sort · S share · v view · ? help · q quit",
	LayoutView: "j/k focus · h/l scroll · </> hour · S share · v edit · ? help · q quit",
}

// View renders the board with any open modal on top.
func (m *Model) View() (string, *tea.Cursor) {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "", nil
	}
	sections := []string{m.renderHeader()}
	end := min(m.cardOffset+m.cardsPerPage(), len(m.projections))
	for i := m.cardOffset; i < end; i++ {
		sections = append(sections, m.renderCard(i))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	bodyLines := m.termHeight - footerHeight
	lines := strings.Split(body, "\n")
	for len(lines) < bodyLines {
		lines = append(lines, "")
	}
	if len(lines) > bodyLines {
		lines = lines[:bodyLines]
	}
	screen := strings.Join(append(lines, m.renderFooter()...), "\n")

	var modal string
	switch m.mode {
	case modePicker:
		modal = m.picker.View()
	case modeConfirm:
		modal = m.renderConfirm()
	case modeHelp:
		modal = m.help.View()
	}
	if modal != "" {
		screen = overlay.Compose(screen, m.termWidth, m.termHeight, modal, overlay.Center)
	}
	return screen, nil
}

func (m *Model) renderHeader() string {
	title := m.theme.Header.Title.Render("zones")
	info := fmt.Sprintf(" %s mode · %d zones", m.layout, m.snap.Len())
	if m.stale {
		info += " · changed on disk"
	}
	return truncate.String(title+m.theme.Header.Mode.Render(info), uint(m.termWidth))
}

func (m *Model) renderCard(i int) string {
	p := m.projections[i]
	card := m.theme.Card
	inner := m.stripWidth()

	var label string
	switch {
	case m.mode == modeLabel && p.Entry.ID == m.editID:
		label = m.input.View()
	case m.layout == LayoutView:
		label = card.Label.Render(p.Entry.Title())
	case strings.TrimSpace(p.Entry.Label) == "":
		label = card.Placeholder.Render("Name")
	default:
		label = card.Label.Render(p.Entry.Label)
	}

	zone := p.Timeline.Zone
	if off := p.Timeline.Header.OffsetLabel; off != "" {
		zone = fmt.Sprintf("%s (%s)", zone, off)
	}
	clock := card.Clock.Render(p.Timeline.Header.Clock) + "  " + card.Zone.Render(zone)
	if !p.Timeline.Known {
		clock += card.Warning.Render("  unknown zone, showing UTC")
	}

	body := []string{
		truncate.String(label, uint(inner)),
		truncate.String(clock, uint(inner)),
	}
	if s, ok := m.strips[p.Entry.ID]; ok {
		body = append(body, s.View())
	}
	frame := card.Frame
	if i == m.focus {
		frame = card.FocusedFrame
	}
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (m *Model) renderFooter() []string {
	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	help := m.theme.Footer.Help.Render(footerHelp[m.layout])
	w := uint(m.termWidth)
	return []string{truncate.String(status, w), truncate.String(help, w)}
}

func (m *Model) renderConfirm() string {
	modal := m.theme.Modal
	var question string
	switch m.confirm {
	case confirmDelete:
		name := m.confirmID
		if e, ok := m.snap.Find(m.confirmID); ok {
			name = e.Title()
		}
		question = fmt.Sprintf("Delete %s?", name)
	case confirmReset:
		question = "Reset all zones to " + zoneinfo.LocalZone() + "?"
	}
	return modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		modal.Title.Render(question),
		modal.Muted.Render("y to confirm · n to cancel"),
	))
}
