package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/zones/pkg/scroll"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// TickMsg carries one clock tick.
type TickMsg struct {
	At time.Time
}

// ScrollFrameMsg asks the root model to flush pending scroll syncs.
type ScrollFrameMsg struct{}

// StorageChangedMsg reports that another process rewrote the saved
// collection.
type StorageChangedMsg struct {
	Event store.Event
}

// Describe renders the change in a human-friendly format for logs.
func (m StorageChangedMsg) Describe() string {
	return fmt.Sprintf("storage %s at %s", m.Event.Type, m.Event.At.Format(time.Kitchen))
}

// ZonePickedMsg is emitted when the user accepts a picker result.
type ZonePickedMsg struct {
	Component ComponentID
	Zone      zoneinfo.Searchable
}

// Describe renders the pick in a human-friendly format for logs.
func (m ZonePickedMsg) Describe() string {
	return fmt.Sprintf(`zone:%q city:%q`, m.Zone.Zone, m.Zone.Display)
}

// PickerQueryMsg is emitted whenever the picker query text changes.
type PickerQueryMsg struct {
	Component ComponentID
	Query     string
	Results   int
}

// PickerCancelMsg closes the picker without a change.
type PickerCancelMsg struct {
	Component ComponentID
}

// StatusMsg replaces the footer status line.
type StatusMsg struct {
	Text  string
	Error bool
}

// WaitTick blocks on the next clock tick.
func WaitTick(c <-chan time.Time) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		at, ok := <-c
		if !ok {
			return nil
		}
		return TickMsg{At: at}
	}
}

// WaitStorage blocks on the next storage change.
func WaitStorage(c <-chan store.Event) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-c
		if !ok {
			return nil
		}
		return StorageChangedMsg{Event: ev}
	}
}

// ScrollFrame schedules the next scroll flush one frame from now.
func ScrollFrame() tea.Cmd {
	return tea.Tick(scroll.FrameInterval, func(time.Time) tea.Msg {
		return ScrollFrameMsg{}
	})
}

// Status emits a footer status line.
func Status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, Error: isErr} }
}
