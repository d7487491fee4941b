package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	lo := &options.LabelOptions{}
	interactive := false

	cmd := &cobra.Command{
		Use:   "add [zone]",
		Short: "Add a zone to the saved collection.",
		Example: `
zones add Asia/Tokyo --label "tokyo office"
zones add -i
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: zoneCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := add.Add{
				Label:       lo.Label,
				JSON:        output.JSON,
				Interactive: interactive,
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				Service:     rt.Service,
			}
			if len(args) > 0 {
				s.Zone = args[0]
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddLabelArgs(cmd, lo)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"Search for the zone with a prompt.")

	topLevel.AddCommand(cmd)
}
