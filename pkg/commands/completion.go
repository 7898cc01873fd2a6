package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/zenday/pkg/entry"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(zenday completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(zenday completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func fieldCompletions(toComplete string) []string {
	fields := make([]string, 0, len(entry.Fields()))
	for _, f := range entry.Fields() {
		if strings.HasPrefix(string(f), toComplete) {
			fields = append(fields, string(f))
		}
	}
	return fields
}
