package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/zenday/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
zenday ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), logFile)
			if err != nil {
				return err
			}
			defer env.Close()
			i := ui.UI{Controller: env.Controller}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
