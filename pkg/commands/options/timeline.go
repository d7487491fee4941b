package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/timeutil"
)

// TimelineOptions
type TimelineOptions struct {
	Hours    int
	Span     string
	Selected int
}

func AddTimelineArgs(cmd *cobra.Command, o *TimelineOptions) {
	cmd.Flags().IntVar(&o.Hours, "hours", 0,
		"Number of hour blocks per timeline. Defaults to timeline.hours from config.")
	cmd.Flags().StringVar(&o.Span, "span", "",
		"Timeline length as a span, e.g. 36h, 2d or 1w.")
	cmd.Flags().IntVar(&o.Selected, "select", -1,
		"Highlight the block at this index.")
}

func (o *TimelineOptions) Validate() error {
	if o.Hours < 0 {
		return errors.New("--hours must be positive")
	}
	if o.Hours > 0 && o.Span != "" {
		return errors.New("use one of --hours or --span")
	}
	if o.Span != "" {
		hours, _, err := timeutil.ParseSpan(o.Span)
		if err != nil {
			return err
		}
		o.Hours = hours
	}
	return nil
}
