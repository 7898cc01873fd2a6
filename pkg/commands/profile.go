package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/zenday/pkg/commands/options"
	zp "tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/prompt"
	"tableflip.dev/zenday/pkg/runner/profile"
)

func addProfile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set the birth data used for readings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProfileShow(cmd)
	addProfileSet(cmd)

	topLevel.AddCommand(cmd)
}

func addProfileShow(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := fo.GetFormat(oo.JSON)
			if err != nil {
				return oo.HandleError(err)
			}
			env, err := setup(cmd.Context(), logStderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer env.Close()

			s := profile.Show{Controller: env.Controller, Format: format, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addProfileSet(topLevel *cobra.Command) {
	po := &options.ProfileOptions{}
	fo := &options.FormatOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the profile. Unset flags keep their stored value.",
		Example: `
zenday profile set --name Alex --birth-date 1990-01-01 --birth-time 08:30
zenday profile set --birth-time 09:15
zenday profile set -i
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := fo.GetFormat(oo.JSON)
			if err != nil {
				return oo.HandleError(err)
			}
			env, err := setup(cmd.Context(), logStderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer env.Close()

			s := profile.Set{
				Controller: env.Controller,
				Merge:      po.Merge,
				Format:     format,
				Out:        cmd.OutOrStdout(),
			}
			if i.Interactive {
				s.Prompt = func(p zp.Profile) (zp.Profile, error) {
					return prompt.Profile(po.Merge(p))
				}
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddProfileArgs(cmd, po)
	options.InteractiveArgs(cmd, i)
	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
