package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/zenday/pkg/commands/options"
	"tableflip.dev/zenday/pkg/runner/almanac"
)

func addAlmanac(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	fo := &options.FormatOptions{}
	cached := false

	cmd := &cobra.Command{
		Use:     "almanac",
		Aliases: []string{"huangli"},
		Short:   "Show the almanac for a day.",
		Long: base.Wrap80("Show the day's pillars, solar term and the activities it favours and " +
			"warns against. A cached almanac is reused; otherwise the reading service is asked " +
			"and the reply is cached. When the service is unreachable an offline almanac is " +
			"shown and nothing is cached."),
		Example: `
zenday almanac
zenday almanac --date 2024-2-19
zenday almanac --cached -o yaml
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

			a := almanac.Almanac{
				Controller: env.Controller,
				Day:        day,
				Cached:     cached,
				Format:     format,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&cached, "cached", false, "Only show a cached almanac, never call the service.")

	topLevel.AddCommand(cmd)
}
