package options

import (
	"github.com/spf13/cobra"
)

// LabelOptions
type LabelOptions struct {
	Label string
}

func AddLabelArgs(cmd *cobra.Command, o *LabelOptions) {
	cmd.Flags().StringVar(&o.Label, "label", "",
		"Display name for the entry.")
}

// DataOptions
type DataOptions struct {
	Data string
}

func AddDataArgs(cmd *cobra.Command, o *DataOptions) {
	cmd.Flags().StringVar(&o.Data, "data", "",
		"Shared link or token to open instead of the saved entries.")
}

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

// ShareOptions
type ShareOptions struct {
	NoCopy bool
}

func AddShareArgs(cmd *cobra.Command, o *ShareOptions) {
	cmd.Flags().BoolVar(&o.NoCopy, "no-copy", false,
		"Print the link without copying it to the clipboard.")
}
