package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/zenday/pkg/profile"
)

// ProfileOptions
type ProfileOptions struct {
	Name      string
	BirthDate string
	BirthTime string
}

func AddProfileArgs(cmd *cobra.Command, o *ProfileOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Your name.")
	cmd.Flags().StringVar(&o.BirthDate, "birth-date", "",
		`Birth date, example: --birth-date="1990-01-01".`)
	cmd.Flags().StringVar(&o.BirthTime, "birth-time", "",
		`Birth time, example: --birth-time="08:30".`)
}

// Merge overlays the flags that were set on p.
func (o *ProfileOptions) Merge(p profile.Profile) profile.Profile {
	if o.Name != "" {
		p.Name = o.Name
	}
	if o.BirthDate != "" {
		p.BirthDate = o.BirthDate
	}
	if o.BirthTime != "" {
		p.BirthTime = o.BirthTime
	}
	return p
}
