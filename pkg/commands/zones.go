package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/zones"
	"tableflip.dev/zones/pkg/zoneinfo"
)

func addZones(topLevel *cobra.Command) {
	all := false

	cmd := &cobra.Command{
		Use:   "zones [query]",
		Short: "Search the zone catalog by city or zone name.",
		Example: `
zones zones berlin
zones zones america --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := zones.Zones{
				Query:   strings.Join(args, " "),
				All:     all,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Catalog: zoneinfo.Default(),
			}
			err := s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every match.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
