package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/zones/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	logs   = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "zones",
		Short: base.Wrap80("Compare the time across timezones, in the terminal."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			output.Out = cmd.OutOrStdout()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddLogArgs(cmd, logs)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addTimeline(topLevel)
	addAdd(topLevel)
	addLabel(topLevel)
	addZone(topLevel)
	addRemove(topLevel)
	addSort(topLevel)
	addShare(topLevel)
	addImport(topLevel)
	addReset(topLevel)
	addZones(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
