// Package importer imports a shared collection into storage.
package importer

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/printers"
)

type Import struct {
	// Link is a full shared URL or a bare token.
	Link string
	JSON bool
	Out  io.Writer

	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	entries, err := n.Service.Import(ctx, n.Link)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out, Catalog: n.Service.Catalog}
	if n.JSON {
		return pp.JSON(entries)
	}
	pp.TitleWithCount("Imported", len(entries))
	pp.Entries(time.Now(), entries...)
	return nil
}
