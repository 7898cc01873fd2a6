package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/zenday/pkg/printers"
)

// FormatOptions
type FormatOptions struct {
	Output string
}

func AddFormatArgs(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Output format. One of 'json' or 'yaml'; pretty printed when unset.")
}

// GetFormat returns the selected format. json forces JSON regardless of
// --output.
func (o *FormatOptions) GetFormat(json bool) (printers.Format, error) {
	if json {
		return printers.FormatJSON, nil
	}
	return printers.ParseFormat(o.Output)
}
