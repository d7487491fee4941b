package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls where a modal lands on the screen.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginY    int
}

// Center places a modal in the middle of the screen.
var Center = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

// Compose draws foreground on top of background. Background cells outside the
// modal stay visible, styled runs included.
func Compose(background string, width, height int, foreground string, p Placement) string {
	bg := fit(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}
	fg := strings.Split(foreground, "\n")
	fw := 0
	for _, line := range fg {
		fw = max(fw, ansi.StringWidth(line))
	}
	fw = min(fw, width)
	fh := min(len(fg), height)

	x := offset(width, fw, p.Horizontal, 0)
	y := offset(height, fh, p.Vertical, p.MarginY)
	for row := 0; row < fh; row++ {
		line := bg[y+row]
		mid := ansi.Truncate(fg[row], fw, "")
		mid += strings.Repeat(" ", fw-ansi.StringWidth(mid))
		bg[y+row] = ansi.Cut(line, 0, x) + mid + ansi.Cut(line, x+fw, width)
	}
	return strings.Join(bg, "\n")
}

func fit(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

func offset(total, size int, pos lipgloss.Position, margin int) int {
	var off int
	switch pos {
	case lipgloss.Top:
		off = margin
	case lipgloss.Bottom:
		off = total - size - margin
	default:
		off = (total - size) / 2
	}
	return max(0, min(off, total-size))
}
