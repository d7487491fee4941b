package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved zones with the current time in each.",
		Example: `
zones list
zones list --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := list.List{
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
