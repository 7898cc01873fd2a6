// Package almanac fetches and caches the traditional-calendar record for a day.
package almanac

import (
	"strings"

	"tableflip.dev/zenday/pkg/entry"
)

// Data is one day's almanac. It is never edited once created.
type Data struct {
	Date        entry.Day `json:"date"`
	GanZhi      string    `json:"ganZhi"`
	SolarTerm   string    `json:"solarTerm"`
	Yi          []string  `json:"yi"`
	Ji          []string  `json:"ji"`
	Description string    `json:"description"`
}

// Pillars splits GanZhi into its year, month and day tokens. Missing tokens
// are returned empty.
func (d Data) Pillars() (year, month, day string) {
	parts := strings.Fields(d.GanZhi)
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return get(0), get(1), get(2)
}

// Fallback is the neutral record used when the service cannot be reached.
func Fallback(day entry.Day) Data {
	return Data{
		Date:        day,
		GanZhi:      "",
		SolarTerm:   "",
		Yi:          []string{"静心", "休息"},
		Ji:          []string{"冲动", "大额投资"},
		Description: "云深不知处，静待天时。",
	}
}

// SolarTermLabel returns the solar term, or 平日 (an ordinary day) when none.
func (d Data) SolarTermLabel() string {
	if d.SolarTerm == "" {
		return "平日"
	}
	return d.SolarTerm
}

// Top returns at most n items of list.
func Top(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
