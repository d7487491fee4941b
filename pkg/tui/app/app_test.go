package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/clock"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/tui/events"
	"tableflip.dev/zones/pkg/zoneinfo"
)

type memoryPersistence struct {
	mu      sync.Mutex
	entries []entry.Entry
}

func (p *memoryPersistence) Load(context.Context) ([]entry.Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.entries == nil {
		return nil, store.ErrNotFound
	}
	return entry.Clone(p.entries), nil
}

func (p *memoryPersistence) Store(entries []entry.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = entry.Clone(entries)
	return nil
}

func (p *memoryPersistence) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = nil
	return nil
}

func (p *memoryPersistence) Path() string { return "memory" }

func (p *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

var fixedNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func newModel(t *testing.T, entries ...entry.Entry) (*Model, *[]string) {
	t.Helper()
	svc := &app.Service{
		Persistence: &memoryPersistence{entries: entries},
		Catalog:     zoneinfo.Default(),
		Now:         func() time.Time { return fixedNow },
	}
	sess, err := svc.Start(context.Background(), "",
		app.WithoutWatch(),
		app.WithClockOptions(clock.WithInterval(time.Hour), clock.WithNow(func() time.Time { return fixedNow })),
	)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(sess.Stop)

	var copied []string
	m := New(sess, Options{Copy: func(url string) error {
		copied = append(copied, url)
		return nil
	}})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m, &copied
}

func press(m *Model, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "down":
			msg = tea.KeyPressMsg{Code: tea.KeyDown}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Text: k, Code: r}
		}
		_, last = m.Update(msg)
	}
	return last
}

func ids(m *Model) []string {
	return m.sess.Board.Snapshot().IDs()
}

func TestFocusMovesAndClamps(t *testing.T) {
	m, _ := newModel(t,
		entry.Entry{ID: "a", TZ: "UTC"},
		entry.Entry{ID: "b", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
	)
	press(m, "j", "j", "j")
	if m.focus != 1 {
		t.Fatalf("expected focus 1, got %d", m.focus)
	}
	press(m, "k", "k")
	if m.focus != 0 {
		t.Fatalf("expected focus 0, got %d", m.focus)
	}
}

func TestAddAndSortFollowFocus(t *testing.T) {
	m, _ := newModel(t,
		entry.Entry{ID: "a", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
		entry.Entry{ID: "b", TZ: "America/New_York", OffsetInMinutes: -300},
	)
	press(m, "a")
	got := ids(m)
	if len(got) != 3 || m.focus != 2 {
		t.Fatalf("expected focus on the new entry, got %d of %v", m.focus, got)
	}
	added := got[2]

	press(m, "s")
	got = ids(m)
	if got[0] != "b" || got[1] != added || got[2] != "a" {
		t.Fatalf("unexpected sort order %v", got)
	}
	if m.focus != 1 {
		t.Fatalf("focus should follow the new entry, got %d", m.focus)
	}
	if len(m.strips) != 3 {
		t.Fatalf("expected a strip per entry, got %d", len(m.strips))
	}
}

func TestViewModeBlocksEditing(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "UTC"})
	press(m, "v", "a")
	if m.layout != LayoutView {
		t.Fatalf("expected view layout")
	}
	if len(ids(m)) != 1 {
		t.Fatalf("view mode must not add entries")
	}
	if !strings.Contains(m.status, "press v") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestDeleteConfirms(t *testing.T) {
	m, _ := newModel(t,
		entry.Entry{ID: "a", TZ: "UTC"},
		entry.Entry{ID: "b", TZ: "UTC"},
	)
	press(m, "d", "n")
	if len(ids(m)) != 2 || m.mode != modeNormal {
		t.Fatalf("cancel must keep entries")
	}
	press(m, "d", "y")
	if got := ids(m); len(got) != 1 || got[0] != "b" {
		t.Fatalf("unexpected entries %v", got)
	}
	press(m, "d")
	if m.mode != modeNormal || !m.statusErr {
		t.Fatalf("deleting the last entry should be refused")
	}
}

func TestRenameLabel(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "UTC", Label: "old"})
	press(m, "e")
	if m.mode != modeLabel {
		t.Fatalf("expected label mode")
	}
	m.input.SetValue("home")
	press(m, "enter")
	e, _ := m.sess.Board.Snapshot().Find("a")
	if e.Label != "home" || m.mode != modeNormal {
		t.Fatalf("unexpected entry %+v", e)
	}

	press(m, "e")
	m.input.SetValue("ignored")
	press(m, "esc")
	if e, _ := m.sess.Board.Snapshot().Find("a"); e.Label != "home" {
		t.Fatalf("esc must not rename, got %q", e.Label)
	}
}

func TestPickZone(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "UTC"})
	press(m, "z")
	if m.mode != modePicker {
		t.Fatalf("expected picker mode")
	}
	m.Update(events.ZonePickedMsg{Zone: zoneinfo.Searchable{Zone: "Asia/Tokyo", City: "Tokyo", OffsetInMinutes: 540}})
	e, _ := m.sess.Board.Snapshot().Find("a")
	if e.TZ != "Asia/Tokyo" || e.OffsetInMinutes != 540 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if m.mode != modeNormal {
		t.Fatalf("picker should close")
	}
	if got := m.projections[0].Timeline.Blocks[0].TimeLabel; got != "21:00" {
		t.Fatalf("timeline not reprojected, first block %s", got)
	}
}

func TestScrollSyncsOnFrame(t *testing.T) {
	m, _ := newModel(t,
		entry.Entry{ID: "a", TZ: "UTC"},
		entry.Entry{ID: "b", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
	)
	if cmd := press(m, "l"); cmd == nil {
		t.Fatalf("scrolling should schedule a frame")
	}
	if got := m.strips["b"].Viewport().Column(); got != 0 {
		t.Fatalf("other strips follow on the frame, not before; got %d", got)
	}
	m.Update(events.ScrollFrameMsg{})
	want := m.strips["a"].Viewport().Column()
	if want == 0 {
		t.Fatalf("focused strip did not scroll")
	}
	if got := m.strips["b"].Viewport().Column(); got != want {
		t.Fatalf("expected column %d, got %d", want, got)
	}
}

func TestSelectHourClamps(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "UTC"})
	press(m, "<")
	if m.selected != 0 {
		t.Fatalf("selection should stop at 0, got %d", m.selected)
	}
	press(m, ">", ">")
	if m.selected != 2 || !m.projections[0].Timeline.Blocks[2].Selected {
		t.Fatalf("expected block 2 selected, got %d", m.selected)
	}
	for i := 0; i < 60; i++ {
		press(m, ">")
	}
	if m.selected != m.hours()-1 {
		t.Fatalf("selection should stop at the last block, got %d", m.selected)
	}
}

func TestShareCopies(t *testing.T) {
	m, copied := newModel(t, entry.Entry{ID: "a", TZ: "UTC"})
	press(m, "S")
	if len(*copied) != 1 {
		t.Fatalf("expected one copy, got %d", len(*copied))
	}
	if !strings.Contains(m.status, (*copied)[0]) {
		t.Fatalf("status should show the link, got %q", m.status)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	press(m, "S")
	if m.statusErr || !strings.Contains(m.status, "copy it yourself") {
		t.Fatalf("copy failure should be reported, got %q", m.status)
	}
}

func TestResetConfirms(t *testing.T) {
	m, _ := newModel(t,
		entry.Entry{ID: "a", TZ: "UTC"},
		entry.Entry{ID: "b", TZ: "UTC"},
	)
	press(m, "R", "y")
	snap := m.sess.Board.Snapshot()
	if snap.Len() != 1 || snap.At(0).Label != entry.LocalLabel {
		t.Fatalf("unexpected reset board %+v", snap.Entries())
	}
}

func TestStorageChangeMarksStale(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "UTC"})
	m.Update(events.StorageChangedMsg{Event: store.Event{Type: store.EventRecordChanged, At: fixedNow}})
	if !m.stale {
		t.Fatalf("expected stale board")
	}
	press(m, "r")
	if m.stale {
		t.Fatalf("reload should clear the stale flag")
	}
}

func TestViewRendersCards(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "Asia/Tokyo", Label: "tokyo office", OffsetInMinutes: 540})
	out, _ := m.View()
	for _, want := range []string{"zones", "tokyo office", "Asia/Tokyo", "9PM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
	press(m, "?")
	out, _ = m.View()
	if !strings.Contains(out, "toggle view / edit mode") {
		t.Fatalf("help overlay missing:\n%s", out)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, entry.Entry{ID: "a", TZ: "UTC"})
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
