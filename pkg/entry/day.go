package entry

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Day is a calendar date in YYYY-MM-DD form.
type Day string

// Today returns the UTC calendar day for now.
func Today(now time.Time) Day {
	return Day(now.UTC().Format(layoutISO))
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(layoutISO))
}

// ParseDay validates s as a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return "", fmt.Errorf("entry: invalid date %q, want YYYY-MM-DD", s)
	}
	return Day(t.Format(layoutISO)), nil
}

// Time returns midnight UTC of the day, or the zero time if d is malformed.
func (d Day) Time() time.Time {
	t, err := time.Parse(layoutISO, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) String() string {
	return string(d)
}
