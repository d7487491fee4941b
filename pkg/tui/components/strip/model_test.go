package strip

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/zones/pkg/timeline"
	"tableflip.dev/zones/pkg/tui/theme"
)

var now = time.Date(2025, time.January, 15, 13, 30, 0, 0, time.UTC)

func newStrip(t *testing.T, width int) *Model {
	t.Helper()
	m := New(theme.Default().Block)
	m.SetTimeline(timeline.Project("UTC", now, timeline.Options{Hours: 10, Selected: -1}))
	m.SetSize(width, Height)
	return m
}

func TestViewCutsToWidth(t *testing.T) {
	m := newStrip(t, 3*BlockWidth)
	lines := strings.Split(m.View(), "\n")
	if len(lines) != Height {
		t.Fatalf("expected %d lines, got %d", Height, len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w != 3*BlockWidth {
			t.Fatalf("expected width %d, got %d", 3*BlockWidth, w)
		}
	}
	if !strings.Contains(ansi.Strip(lines[1]), "1PM") {
		t.Fatalf("first block should be visible: %q", ansi.Strip(lines[1]))
	}
}

func TestScrollBlocksClamps(t *testing.T) {
	m := newStrip(t, 3*BlockWidth)
	m.ScrollBlocks(2)
	if got := m.Viewport().Column(); got != 2*BlockWidth {
		t.Fatalf("expected column %d, got %d", 2*BlockWidth, got)
	}
	m.ScrollBlocks(100)
	if got, want := m.Viewport().Column(), 7*BlockWidth; got != want {
		t.Fatalf("expected clamp to %d, got %d", want, got)
	}
	m.ScrollBlocks(-100)
	if got := m.Viewport().Column(); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestEnsureVisible(t *testing.T) {
	m := newStrip(t, 3*BlockWidth)
	m.EnsureVisible(5)
	if got, want := m.Viewport().Column(), 3*BlockWidth; got != want {
		t.Fatalf("expected column %d, got %d", want, got)
	}
	m.EnsureVisible(4)
	if got, want := m.Viewport().Column(), 3*BlockWidth; got != want {
		t.Fatalf("visible block should not scroll, got %d", got)
	}
	m.EnsureVisible(0)
	if got := m.Viewport().Column(); got != 0 {
		t.Fatalf("expected column 0, got %d", got)
	}
}
