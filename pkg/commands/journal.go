package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/zenday/pkg/commands/options"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/runner/journal"
)

func addJournal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j"},
		Short:   "Show, fill in and list daily journal entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addJournalShow(cmd)
	addJournalSet(cmd)
	addJournalHistory(cmd)

	topLevel.AddCommand(cmd)
}

func addJournalShow(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the journal entry for a day.",
		Example: `
zenday journal show
zenday journal show --date yesterday -o json
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

			s := journal.Show{
				Controller: env.Controller,
				Day:        day,
				Format:     format,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addJournalSet(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	fo := &options.FormatOptions{}

	long := strings.Builder{}
	long.WriteString("Set one field of a day's journal entry. The whole entry is saved.\n\n")
	long.WriteString("Fields:\n")
	for _, f := range entry.Fields() {
		long.WriteString(fmt.Sprintf("  %-15s %s\n", f, entry.FieldLabel(f)))
	}
	long.WriteString("\nmood is 1 to 5; healthStatus is one of ")
	statuses := make([]string, 0, len(entry.HealthStatuses()))
	for _, s := range entry.HealthStatuses() {
		statuses = append(statuses, string(s))
	}
	long.WriteString(strings.Join(statuses, ", ") + ".")

	cmd := &cobra.Command{
		Use:   "set FIELD VALUE",
		Short: "Set one field of a journal entry.",
		Long:  long.String(),
		Example: `
zenday journal set mood 4
zenday journal set moodNote "slept well"
zenday journal set financeExpense 12.5 --date 2024-2-19
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a field and a value")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return fieldCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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

			s := journal.Set{
				Controller: env.Controller,
				Day:        day,
				Field:      args[0],
				Value:      strings.Join(args[1:], " "),
				Format:     format,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addJournalHistory(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls"},
		Short:   "List journaled days, newest first.",
		Example: `
zenday journal history
zenday journal history --calendar
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

			h := journal.History{
				Controller: env.Controller,
				Calendar:   calendar,
				Format:     format,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(h.Do(cmd.Context()))
		},
	}

	options.AddFormatArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Show month grids colored by mood.")
	topLevel.AddCommand(cmd)
}
