package options

import (
	"github.com/spf13/cobra"
)

// LogOptions override the log.* config keys.
type LogOptions struct {
	File  string
	Level string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Write logs to this file.")
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error.")
}
