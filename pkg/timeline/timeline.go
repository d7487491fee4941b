// Package timeline projects an entry's zone onto a run of hour blocks.
package timeline

import (
	"time"

	"tableflip.dev/zones/pkg/zoneinfo"
)

// DefaultHours is the length of a timeline when no length is configured.
const DefaultHours = 48

const (
	hourLayout   = "3PM"
	timeLayout   = "15:04"
	headerLayout = "Mon, Jan 2, 2006, 3:04 PM"
)

// Options tunes a projection.
type Options struct {
	// Hours is the number of blocks. Values <= 0 mean DefaultHours.
	Hours int
	// Selected is the highlighted block index, shared across all timelines.
	Selected int
	// Catalog resolves the zone. nil means zoneinfo.Default().
	Catalog *zoneinfo.Catalog
}

// Block is one hour of a timeline.
type Block struct {
	Index       int
	Time        time.Time
	HourLabel   string
	TimeLabel   string
	DayBoundary bool
	Selected    bool
}

// Header is the clock line shown above the blocks.
type Header struct {
	Now         time.Time
	Clock       string
	Zone        string
	OffsetLabel string
}

// Timeline is the projection of one zone from one instant.
type Timeline struct {
	Zone string
	// Known is false when the zone could not be resolved; blocks are then
	// computed in UTC.
	Known  bool
	Header Header
	Blocks []Block
}

// Project builds the timeline for tz starting at now. It is pure and cheap
// enough to run on every tick.
func Project(tz string, now time.Time, opts Options) Timeline {
	hours := opts.Hours
	if hours <= 0 {
		hours = DefaultHours
	}
	cat := opts.Catalog
	if cat == nil {
		cat = zoneinfo.Default()
	}

	tl := Timeline{Zone: tz, Known: true}
	loc, err := cat.Location(tz)
	if err != nil {
		tl.Known = false
		loc = time.UTC
	}

	local := now.In(loc)
	tl.Header = Header{
		Now:   local,
		Clock: local.Format(headerLayout),
		Zone:  tz,
	}
	if tl.Known {
		_, secs := local.Zone()
		tl.Header.OffsetLabel = zoneinfo.FormatOffset(secs / 60)
	}

	tl.Blocks = make([]Block, hours)
	for i := range tl.Blocks {
		t := local.Add(time.Duration(i) * time.Hour)
		tl.Blocks[i] = Block{
			Index:       i,
			Time:        t,
			HourLabel:   t.Format(hourLayout),
			TimeLabel:   t.Format(timeLayout),
			DayBoundary: t.Hour() == 0,
			Selected:    i == opts.Selected,
		}
	}
	return tl
}

// Selected returns the highlighted block, if the index is in range.
func (tl Timeline) Selected() (Block, bool) {
	for _, b := range tl.Blocks {
		if b.Selected {
			return b, true
		}
	}
	return Block{}, false
}
