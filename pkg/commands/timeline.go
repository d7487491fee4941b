package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/timeline"
)

func addTimeline(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	to := &options.TimelineOptions{}

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Print the upcoming hours of every saved zone.",
		Example: `
zones timeline
zones timeline --hours 12 --select 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return to.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			hours := to.Hours
			if hours == 0 {
				hours = rt.Settings.Hours
			}
			s := timeline.Timeline{
				Hours:    hours,
				Selected: to.Selected,
				ShowID:   io.ShowID,
				JSON:     output.JSON,
				Out:      cmd.OutOrStdout(),
				Service:  rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTimelineArgs(cmd, to)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
