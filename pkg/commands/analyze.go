package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/zenday/pkg/commands/options"
	"tableflip.dev/zenday/pkg/runner/analyze"
)

func addAnalyze(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	fo := &options.FormatOptions{}
	stored := false

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask for a personal reading of a day.",
		Long: base.Wrap80("Ask for a reading that combines your birth data, the day's almanac and " +
			"your journal entry. Needs a profile and at least one journal note. The result " +
			"replaces any reading stored for the day."),
		Example: `
zenday analyze
zenday analyze --date yesterday
zenday analyze --stored -o json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := do.GetDay(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			format, err := fo.GetFormat(oo.JSON)
			if err != nil {
				return oo.HandleError(err)
			}
			env, err := setup(cmd.Context(), logStderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer env.Close()

			a := analyze.Analyze{
				Controller: env.Controller,
				Day:        day,
				Stored:     stored,
				Format:     format,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&stored, "stored", false, "Show the stored reading, never call the service.")

	topLevel.AddCommand(cmd)
}
