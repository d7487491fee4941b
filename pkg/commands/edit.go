package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/edit"
)

func addLabel(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "label id text...",
		Short: "Rename a saved zone.",
		Example: `
zones label 2f1c... home office
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := edit.Label{
				ID:      args[0],
				Label:   strings.Join(args[1:], " "),
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addZone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "zone id zone",
		Short: "Change the timezone of a saved zone.",
		Example: `
zones zone 2f1c... Europe/Berlin
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return idCompletions(cmd, args, toComplete)
			}
			return zoneCompletions(cmd, nil, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := edit.Zone{
				ID:      args[0],
				Zone:    args[1],
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove id",
		Aliases: []string{"rm"},
		Short:   "Remove a saved zone. The last zone can not be removed.",
		Example: `
zones remove 2f1c...
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := edit.Remove{
				ID:      args[0],
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addSort(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Order saved zones by UTC offset.",
		Example: `
zones sort
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := edit.Sort{
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
