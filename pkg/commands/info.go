package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where zones are stored.",
		Example: `
zones info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := info.Info{
				Config:  rt.Settings,
				Service: rt.Service,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
