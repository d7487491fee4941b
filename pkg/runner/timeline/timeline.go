package timeline

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/printers"
)

type Timeline struct {
	Hours    int
	Selected int
	ShowID   bool
	JSON     bool
	Now      time.Time
	Out      io.Writer

	Service *app.Service
}

type jsonBlock struct {
	Index       int       `json:"index"`
	Time        time.Time `json:"time"`
	Hour        string    `json:"hour"`
	Clock       string    `json:"clock"`
	DayBoundary bool      `json:"dayBoundary,omitempty"`
	Selected    bool      `json:"selected,omitempty"`
}

type jsonTimeline struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Zone   string      `json:"tz"`
	Known  bool        `json:"known"`
	Offset string      `json:"offset,omitempty"`
	Now    string      `json:"now"`
	Blocks []jsonBlock `json:"blocks"`
}

func (n *Timeline) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not project, no service")
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	hours := n.Hours
	if hours <= 0 {
		hours = n.Service.Hours
	}
	projs, err := n.Service.Timelines(ctx, now, hours, n.Selected)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Catalog: n.Service.Catalog}
	if n.JSON {
		out := make([]jsonTimeline, 0, len(projs))
		for _, p := range projs {
			jt := jsonTimeline{
				ID:     p.Entry.ID,
				Label:  p.Entry.Label,
				Zone:   p.Entry.TZ,
				Known:  p.Timeline.Known,
				Offset: p.Timeline.Header.OffsetLabel,
				Now:    p.Timeline.Header.Clock,
			}
			for _, b := range p.Timeline.Blocks {
				jt.Blocks = append(jt.Blocks, jsonBlock{
					Index:       b.Index,
					Time:        b.Time,
					Hour:        b.HourLabel,
					Clock:       b.TimeLabel,
					DayBoundary: b.DayBoundary,
					Selected:    b.Selected,
				})
			}
			out = append(out, jt)
		}
		return pp.JSON(out)
	}

	pp.NewLine()
	for _, p := range projs {
		pp.Timeline(p.Entry, p.Timeline)
	}
	return nil
}
