package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/zenday/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where records are stored.",
		Example: `
zenday info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := setup(cmd.Context(), logStderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer env.Close()

			s := info.Info{
				Config:      env.Config,
				Persistence: env.Persistence,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
