package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/zenday/pkg/entry"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DayOptions selects the day a command works on.
type DayOptions struct {
	DateString string
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVarP(&o.DateString, "date", "d", "",
		`Specify a day, example: --date="2024-2-19", --date="2/19" or --date=yesterday. Defaults to today.`)
}

// GetDay resolves the flag against now.
func (o *DayOptions) GetDay(now time.Time) (entry.Day, error) {
	raw := strings.TrimSpace(o.DateString)
	switch strings.ToLower(raw) {
	case "", "today":
		return entry.Today(now), nil
	case "yesterday":
		return entry.Today(now.AddDate(0, 0, -1)), nil
	}
	t, err := time.Parse(layoutISO, raw)
	if err != nil {
		// Same year as now.
		md, err := time.Parse(layoutISOShort, raw)
		if err != nil {
			return "", err
		}
		t = time.Date(now.Year(), md.Month(), md.Day(), 0, 0, 0, 0, time.UTC)
		if t.Month() != md.Month() || t.Day() != md.Day() {
			return "", fmt.Errorf("%s is not a day in %d", raw, now.Year())
		}
	}
	return entry.DayOf(t), nil
}
