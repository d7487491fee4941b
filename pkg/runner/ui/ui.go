package ui

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/share"
	tui "tableflip.dev/zones/pkg/tui/app"
)

var errNoTerminal = errors.New("ui: stdout is not a terminal, try `zones list` instead")

var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type UI struct {
	// Data is a shared link or token opened instead of the saved collection.
	Data   string
	View   bool
	Logger *slog.Logger

	Service *app.Service
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open ui, no service")
	}
	if !isTerminal() {
		return errNoTerminal
	}
	token := d.Data
	if token != "" {
		t, err := share.ExtractToken(token)
		if err != nil {
			return err
		}
		token = t
	}

	sess, err := d.Service.Start(ctx, token)
	if err != nil {
		return err
	}
	defer sess.Stop()

	layout := tui.LayoutEdit
	if d.View {
		layout = tui.LayoutView
	}
	return tui.Run(ctx, sess, tui.Options{Logger: d.Logger, Layout: layout})
}
