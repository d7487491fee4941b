package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved zones and start over with the local zone.",
		Example: `
zones reset
zones reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return err
			}
			defer rt.Close()
			s := reset.Reset{
				Yes:     co.Yes,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			return s.Do(context.Background())
		},
	}
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
