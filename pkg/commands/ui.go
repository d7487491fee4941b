package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	do := &options.DataOptions{}
	view := false
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
zones ui
zones ui --data 'https://zones.tableflip.dev/?data=W3si...'
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := loadUI()
			if err != nil {
				return err
			}
			defer rt.Close()
			i := ui.UI{
				Data:    do.Data,
				View:    view,
				Logger:  rt.Logger,
				Service: rt.Service,
			}
			return i.Do(context.Background())
		},
	}
	options.AddDataArgs(cmd, do)
	cmd.Flags().BoolVar(&view, "view", false, "Start in view mode.")

	topLevel.AddCommand(cmd)
}
