package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/timeline"
)

const blockWidth = len("12AM ") // widest hour label plus a gap

// Timeline prints the clock line for e followed by its hour blocks, eight to
// a row.
func (pp *PrettyPrint) Timeline(e entry.Entry, tl timeline.Timeline) {
	t := color.New(color.Bold)
	f := color.New(color.Faint)

	title := e.Title()
	if pp.ShowID {
		title = fmt.Sprintf("%s  %s", title, f.Sprint(e.ID))
	}
	_, _ = t.Fprintln(pp.out(), Label(title))

	zone := tl.Zone
	if tl.Header.OffsetLabel != "" {
		zone = fmt.Sprintf("%s (%s)", zone, tl.Header.OffsetLabel)
	}
	if !tl.Known {
		zone += f.Sprint(" unknown zone, showing UTC")
	}
	_, _ = fmt.Fprintf(pp.out(), "%s  %s\n", tl.Header.Clock, f.Sprint(zone))

	pp.blocks(tl.Blocks)
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) blocks(blocks []timeline.Block) {
	plain := color.New(color.FgWhite)
	night := color.New(color.Faint, color.FgWhite)
	boundary := color.New(color.Bold, color.FgHiCyan)
	selected := color.New(color.ReverseVideo, color.Bold)

	const perRow = 8
	for start := 0; start < len(blocks); start += perRow {
		end := start + perRow
		if end > len(blocks) {
			end = len(blocks)
		}
		var b strings.Builder
		for _, blk := range blocks[start:end] {
			c := plain
			switch {
			case blk.Selected:
				c = selected
			case blk.DayBoundary:
				c = boundary
			case blk.Time.Hour() < 7 || blk.Time.Hour() >= 21:
				c = night
			}
			b.WriteString(c.Sprintf("%-*s", blockWidth, blk.HourLabel))
		}
		_, _ = fmt.Fprintln(pp.out(), b.String())
	}
}
