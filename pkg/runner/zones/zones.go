package zones

import (
	"context"
	"io"
	"time"

	"tableflip.dev/zones/pkg/printers"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// Limit caps the number of results printed.
const Limit = 25

type Zones struct {
	Query   string
	All     bool
	JSON    bool
	Now     time.Time
	Out     io.Writer
	Catalog *zoneinfo.Catalog
}

func (n *Zones) Do(_ context.Context) error {
	c := n.Catalog
	if c == nil {
		c = zoneinfo.Default()
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	limit := Limit
	if n.All {
		limit = 0
	}
	results := c.Search(n.Query, now, limit)

	pp := printers.PrettyPrint{Out: n.Out, Catalog: c}
	if n.JSON {
		return pp.JSON(results)
	}
	pp.Zones(results...)
	return nil
}
