// Package edit holds the runners that change one stored entry or the order.
package edit

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/printers"
)

// Label renames an entry.
type Label struct {
	ID    string
	Label string
	JSON  bool
	Out   io.Writer

	Service *app.Service
}

func (n *Label) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not label, no service")
	}
	e, err := n.Service.SetLabel(ctx, n.ID, n.Label)
	if err != nil {
		return err
	}
	return show(n.Out, n.JSON, n.Service, e)
}

// Zone moves an entry to another zone.
type Zone struct {
	ID   string
	Zone string
	JSON bool
	Out  io.Writer

	Service *app.Service
}

func (n *Zone) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set zone, no service")
	}
	e, err := n.Service.SetZone(ctx, n.ID, n.Zone)
	if err != nil {
		return err
	}
	return show(n.Out, n.JSON, n.Service, e)
}

// Remove deletes an entry.
type Remove struct {
	ID  string
	Out io.Writer

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if err := n.Service.Remove(ctx, n.ID); err != nil {
		return err
	}
	entries, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out, Catalog: n.Service.Catalog}
	pp.Title("Zones")
	pp.Entries(time.Now(), entries...)
	return nil
}

// Sort orders the stored entries by UTC offset.
type Sort struct {
	JSON bool
	Out  io.Writer

	Service *app.Service
}

func (n *Sort) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not sort, no service")
	}
	entries, err := n.Service.Sort(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, Catalog: n.Service.Catalog}
	if n.JSON {
		return pp.JSON(entries)
	}
	pp.Title("Zones")
	pp.Entries(time.Now(), entries...)
	return nil
}

func show(out io.Writer, asJSON bool, svc *app.Service, e entry.Entry) error {
	pp := printers.PrettyPrint{ShowID: true, Out: out, Catalog: svc.Catalog}
	if asJSON {
		return pp.JSON(e)
	}
	pp.Entries(time.Now(), e)
	return nil
}
