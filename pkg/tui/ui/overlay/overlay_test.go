package overlay

import (
	"strings"
	"testing"
)

func TestComposeCenters(t *testing.T) {
	bg := strings.Repeat(".........\n", 5)
	got := Compose(strings.TrimSuffix(bg, "\n"), 9, 5, "ab\ncd", Center)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[1] != "...ab...." || lines[2] != "...cd...." {
		t.Fatalf("unexpected composition:\n%s", got)
	}
	if lines[0] != "........." {
		t.Fatalf("background row changed: %q", lines[0])
	}
}

func TestComposeBottom(t *testing.T) {
	got := Compose("", 4, 3, "xx", Placement{Vertical: 0, Horizontal: 0})
	if strings.Count(got, "xx") != 1 {
		t.Fatalf("foreground missing:\n%q", got)
	}
}
