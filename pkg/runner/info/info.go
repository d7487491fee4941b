package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/store"
)

type Info struct {
	Config  *store.Settings
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("ZONES_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "ZONES_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "ZONES_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Config.ConfigFile != "" {
		_, _ = fmt.Fprintln(out, "Config file: ", n.Config.ConfigFile)
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Timeline hours: ", n.Config.Hours)
	_, _ = fmt.Fprintln(out, "Autosave window: ", n.Config.AutosaveWindow)
	_, _ = fmt.Fprintln(out, "Share base URL: ", n.Config.ShareBaseURL)

	if n.Service == nil || n.Service.Persistence == nil {
		return errors.New("failed to create persistence object")
	}
	_, _ = fmt.Fprintln(out, "Record: ", n.Service.Persistence.Path())

	res := n.Service.Resolve(ctx, "")
	_, _ = fmt.Fprintf(out, "Entries (%s):\n", res.Source)
	for _, e := range res.Entries {
		_, _ = fmt.Fprintf(out, "  %s\n", e)
	}
	return nil
}
