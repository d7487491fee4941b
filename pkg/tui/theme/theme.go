package theme

import (
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/zones/pkg/timeline"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Card   CardTheme
	Block  BlockTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// HeaderTheme styles the title bar.
type HeaderTheme struct {
	Title lipgloss.Style
	Mode  lipgloss.Style
}

// CardTheme styles one entry card.
type CardTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Label        lipgloss.Style
	Placeholder  lipgloss.Style
	Clock        lipgloss.Style
	Zone         lipgloss.Style
	Warning      lipgloss.Style
}

// BlockTheme colors hour blocks. Backgrounds run from Night at midnight to
// Day at noon.
type BlockTheme struct {
	Night    colorful.Color
	Day      colorful.Color
	Light    color.Color
	Dark     color.Color
	Boundary color.Color
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered overlays (zone picker, confirmations, help).
type ModalTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	night, _ := colorful.Hex("#1d2540")
	day, _ := colorful.Hex("#f6d57a")
	accent := lipgloss.Color("212")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
			Mode:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Card: CardTheme{
			Frame:        frame,
			FocusedFrame: frame.BorderForeground(accent),
			Label:        lipgloss.NewStyle().Bold(true),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Clock:        lipgloss.NewStyle(),
			Zone:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Block: BlockTheme{
			Night:    night,
			Day:      day,
			Light:    lipgloss.Color("#eeeeee"),
			Dark:     lipgloss.Color("#1a1a1a"),
			Boundary: accent,
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
	}
}

// Daylight is 0 at midnight and 1 at noon.
func Daylight(hour, minute int) float64 {
	h := float64(hour) + float64(minute)/60
	return (1 - math.Cos(2*math.Pi*h/24)) / 2
}

// Background blends Night toward Day by the daylight of hour:minute.
func (b BlockTheme) Background(hour, minute int) colorful.Color {
	return b.Night.BlendHcl(b.Day, Daylight(hour, minute)).Clamped()
}

// Style returns the style of one hour block rendered width cells wide.
func (b BlockTheme) Style(blk timeline.Block, width int) lipgloss.Style {
	fg := b.Light
	if Daylight(blk.Time.Hour(), blk.Time.Minute()) >= 0.5 {
		fg = b.Dark
	}
	s := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Background(b.Background(blk.Time.Hour(), blk.Time.Minute())).
		Foreground(fg)
	if blk.DayBoundary {
		s = s.Foreground(b.Boundary).Bold(true)
	}
	if blk.Selected {
		s = s.Reverse(true).Bold(true)
	}
	return s
}
