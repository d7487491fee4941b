package reset

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

type Reset struct {
	// Yes skips the confirmation.
	Yes bool
	In  io.Reader
	Out io.Writer

	Service *app.Service
}

func (n *Reset) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reset, no service")
	}
	pp := printers.PrettyPrint{Out: n.Out, Catalog: n.Service.Catalog}
	if !n.Yes {
		in, out := n.In, n.Out
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		ok, err := snake.Confirm(in, out, "Are you sure you want to reset all entries")
		if err != nil {
			return err
		}
		if !ok {
			pp.Title("Nothing changed.")
			return nil
		}
	}
	entries, err := n.Service.Reset(ctx)
	if err != nil {
		return err
	}
	pp.Title("Reset")
	pp.Entries(time.Now(), entries...)
	return nil
}
