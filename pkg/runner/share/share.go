package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/printers"
	zshare "tableflip.dev/zones/pkg/share"
)

type Share struct {
	NoCopy bool
	JSON   bool
	Out    io.Writer

	Service *app.Service
}

type result struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Copied bool   `json:"copied"`
}

func (n *Share) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not share, no service")
	}
	link, err := n.Service.Share(ctx)
	if err != nil {
		return err
	}

	res := result{URL: link.URL, Token: link.Token}
	var copyErr error
	if !n.NoCopy {
		if copyErr = zshare.Copy(link.URL); copyErr == nil {
			res.Copied = true
		}
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		pp := printers.PrettyPrint{Out: out}
		return pp.JSON(res)
	}
	_, _ = fmt.Fprintln(out, link.URL)
	f := color.New(color.Faint)
	switch {
	case res.Copied:
		_, _ = f.Fprintln(out, "Copied share URL to clipboard.")
	case copyErr != nil:
		_, _ = f.Fprintf(out, "Not copied: %v\n", copyErr)
	}
	return nil
}
