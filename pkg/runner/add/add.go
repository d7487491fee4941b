package add

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/printers"
	"tableflip.dev/zones/pkg/snake"
)

type Add struct {
	Zone  string
	Label string
	JSON  bool

	// Interactive picks the zone with a prompt when Zone is empty.
	Interactive bool
	In          io.Reader
	Out         io.Writer

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if n.Zone == "" {
		if !n.Interactive {
			return errors.New("a zone is required")
		}
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		out := n.Out
		if out == nil {
			out = os.Stdout
		}
		pick, err := snake.PickZone(in, out, n.Service.Catalog, time.Now())
		if err != nil {
			return err
		}
		n.Zone = pick.Zone
		if n.Label == "" {
			n.Label = pick.City
		}
	}

	e, err := n.Service.Add(ctx, n.Zone, n.Label)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out, Catalog: n.Service.Catalog}
	if n.JSON {
		return pp.JSON(e)
	}
	entries, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	pp.Title("Zones")
	pp.Entries(time.Now(), entries...)
	return nil
}
