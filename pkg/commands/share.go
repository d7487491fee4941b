package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/zones/pkg/commands/options"
	"tableflip.dev/zones/pkg/runner/importer"
	"tableflip.dev/zones/pkg/runner/share"
)

func addShare(topLevel *cobra.Command) {
	so := &options.ShareOptions{}

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that opens the saved zones elsewhere and copy it.",
		Example: `
zones share
zones share --no-copy --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := share.Share{
				NoCopy:  so.NoCopy,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Service: rt.Service,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	options.AddShareArgs(cmd, so)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import link",
		Short: "Replace the saved zones with a shared link or token.",
		Example: `
zones import 'https://zones.tableflip.dev/?data=W3si...'
zones import W3si...
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rt, err := loadCLI()
			if err != nil {
				return output.HandleError(err)
			}
			defer rt.Close()
			s := importer.Import{
				Link:    args[0],
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
