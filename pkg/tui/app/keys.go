package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/tui/events"
)

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if msg.String() == "ctrl+c" {
		*cmds = append(*cmds, tea.Quit)
		return
	}
	switch m.mode {
	case modeLabel:
		m.handleLabelKey(msg, cmds)
	case modePicker:
		_, cmd := m.picker.Update(msg)
		*cmds = append(*cmds, cmd)
	case modeConfirm:
		m.handleConfirmKey(msg)
	case modeHelp:
		m.handleHelpKey(msg, cmds)
	default:
		m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		*cmds = append(*cmds, tea.Quit)
		return
	case "j", "down":
		m.moveFocus(1)
		return
	case "k", "up":
		m.moveFocus(-1)
		return
	case "h", "left":
		m.scroll(-1)
		return
	case "l", "right":
		m.scroll(1)
		return
	case "<", ",":
		m.selectHour(m.selected - 1)
		return
	case ">":
		m.selectHour(m.selected + 1)
		return
	case ".":
		m.selectHour(0)
		return
	case "?":
		m.mode = modeHelp
		return
	case "v":
		m.layout = 1 - m.layout
		m.setStatus(fmt.Sprintf("%s mode", m.layout))
		return
	case "S":
		m.shareLink()
		return
	case "r":
		m.applySnapshot(m.sess.Reload(m.ctx))
		m.stale = false
		m.setStatus("Reloaded saved zones")
		return
	}

	if m.layout != LayoutEdit {
		switch key {
		case "a", "e", "z", "enter", "d", "J", "K", "s", "R":
			m.setStatus("View mode · press v to edit")
		}
		return
	}

	switch key {
	case "a":
		snap := m.sess.Board.Add()
		m.focusOn(snap, snap.At(snap.Len()-1).ID)
		m.setStatus("Added a UTC zone")
	case "s":
		e, _ := m.focusedEntry()
		m.focusOn(m.sess.Board.Sort(), e.ID)
		m.setStatus("Sorted by UTC offset")
	case "J", "K":
		e, ok := m.focusedEntry()
		if !ok {
			return
		}
		delta := 1
		if key == "K" {
			delta = -1
		}
		m.focusOn(m.sess.Board.Move(e.ID, delta), e.ID)
	case "e":
		e, ok := m.focusedEntry()
		if !ok {
			return
		}
		m.editID = e.ID
		m.input.SetValue(e.Label)
		m.input.CursorEnd()
		m.mode = modeLabel
		*cmds = append(*cmds, m.input.Focus())
	case "z", "enter":
		e, ok := m.focusedEntry()
		if !ok {
			return
		}
		m.editID = e.ID
		m.mode = modePicker
		*cmds = append(*cmds, m.picker.Open(e.Query))
	case "d":
		e, ok := m.focusedEntry()
		if !ok {
			return
		}
		if m.snap.Len() == 1 {
			m.setError("The last zone cannot be deleted")
			return
		}
		m.confirm, m.confirmID = confirmDelete, e.ID
		m.mode = modeConfirm
	case "R":
		m.confirm, m.confirmID = confirmReset, ""
		m.mode = modeConfirm
	}
}

func (m *Model) handleLabelKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		label := strings.TrimSpace(m.input.Value())
		m.focusOn(m.sess.Board.Update(m.editID, entry.WithLabel(label)), m.editID)
		m.closeLabel()
		m.setStatus("Renamed")
	case "esc":
		m.closeLabel()
		m.setStatus("Rename cancelled")
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) closeLabel() {
	m.input.Blur()
	m.input.SetValue("")
	m.editID = ""
	m.mode = modeNormal
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		switch m.confirm {
		case confirmDelete:
			m.applySnapshot(m.sess.Board.Remove(m.confirmID))
			m.ensureCardVisible()
			m.setStatus("Zone deleted")
		case confirmReset:
			snap, err := m.sess.Reset()
			m.applySnapshot(snap)
			m.focus, m.cardOffset, m.selected = 0, 0, 0
			m.reproject()
			if err != nil {
				m.setError("Reset failed: " + err.Error())
			} else {
				m.setStatus("Reset to the local zone")
			}
		}
		m.closeConfirm()
	case "n", "esc", "q":
		m.closeConfirm()
		m.setStatus("Cancelled")
	}
}

func (m *Model) closeConfirm() {
	m.confirm, m.confirmID = confirmNone, ""
	m.mode = modeNormal
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = modeNormal
	default:
		_, cmd := m.help.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) applyZone(msg events.ZonePickedMsg) {
	id := m.editID
	p := entry.WithZone(msg.Zone.Zone, msg.Zone.OffsetInMinutes)
	query := m.picker.Query()
	p.Query = &query
	m.closePicker()
	if id == "" {
		return
	}
	m.focusOn(m.sess.Board.Update(id, p), id)
	m.setStatus("Zone set to " + msg.Zone.Zone)
}

func (m *Model) closePicker() {
	m.picker.Close()
	m.editID = ""
	m.mode = modeNormal
}

func (m *Model) moveFocus(delta int) {
	if m.snap == nil || m.snap.Len() == 0 {
		return
	}
	m.focus = max(0, min(m.focus+delta, m.snap.Len()-1))
	m.ensureCardVisible()
}

// scroll moves the focused strip; the synchronizer carries the others along
// on the next frame.
func (m *Model) scroll(blocks int) {
	if s := m.focusedStrip(); s != nil {
		s.ScrollBlocks(blocks)
	}
}

func (m *Model) selectHour(idx int) {
	n := m.hours()
	if n == 0 {
		return
	}
	m.selected = max(0, min(idx, n-1))
	m.reproject()
	if s := m.focusedStrip(); s != nil {
		s.EnsureVisible(m.selected)
	}
}

func (m *Model) shareLink() {
	link, err := m.sess.Share()
	if err != nil {
		m.setError("Share failed: " + err.Error())
		return
	}
	if err := m.copy(link.URL); err != nil {
		m.log.Warn("tui: copy share link", "err", err)
		m.setStatus("Share link (copy it yourself): " + link.URL)
		return
	}
	m.setStatus("Copied share link: " + link.URL)
}
