package list

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/printers"
)

type List struct {
	ShowID bool
	JSON   bool
	Now    time.Time
	Out    io.Writer

	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	entries, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Catalog: n.Service.Catalog}
	if n.JSON {
		return pp.JSON(entries)
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	pp.NewLine()
	pp.TitleWithCount("Zones", len(entries))
	pp.Entries(now, entries...)
	return nil
}
