package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestViewListsKeys(t *testing.T) {
	m := New(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()), 60, 40)
	out := m.View()
	for _, want := range []string{"toggle view / edit mode", "copy a share link"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help:\n%s", want, out)
		}
	}
}
