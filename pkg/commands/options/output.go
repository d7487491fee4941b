package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/share"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out receives JSON errors. Defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// ErrorOutput is the JSON shape of a failed command.
type ErrorOutput struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// ErrorKind sorts err into a stable name scripts can match on.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return "not_found"
	case errors.Is(err, zoneinfo.ErrUnknownZone):
		return "unknown_zone"
	case errors.Is(err, codec.ErrDecode), errors.Is(err, share.ErrNoToken):
		return "bad_link"
	case errors.Is(err, share.ErrClipboard):
		return "clipboard"
	default:
		return "error"
	}
}

// HandleError prints err as JSON when --json is set and swallows it;
// otherwise err is returned to cobra.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		b, err := json.Marshal(ErrorOutput{Error: err.Error(), Kind: ErrorKind(err)})
		if err != nil {
			return err
		}
		out := o.Out
		if out == nil {
			out = color.Output
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}
	return err
}
