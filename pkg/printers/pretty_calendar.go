package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendars prints one month grid per month that has history, newest first.
func (pp *PrettyPrint) Calendars(items []app.HistoryItem) {
	months := make([]time.Time, 0)
	moods := make(map[entry.Day]int, len(items))
	seen := make(map[string]bool)
	for _, it := range items {
		moods[it.Day] = it.Mood
		t := it.Day.Time()
		key := t.Format("2006-01")
		if !seen[key] {
			seen[key] = true
			months = append(months, time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
		}
	}
	for _, m := range months {
		pp.PrintMonthMood(m, moods)
	}
}

// PrintMonthMood prints a month grid with journaled days coloured by mood.
func (pp *PrettyPrint) PrintMonthMood(then time.Time, moods map[entry.Day]int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)
	m := then.Format("2006 Jan")
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	empty := color.New(color.Faint, color.FgWhite)
	for i := 0; i < DaysIn(then); i++ {
		day := entry.DayOf(time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, time.UTC))
		if mood, ok := moods[day]; ok {
			_, _ = color.New(color.Bold, moodColor(mood)).Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = empty.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func moodColor(mood int) color.Attribute {
	switch mood {
	case 1:
		return color.FgRed
	case 2:
		return color.FgMagenta
	case 3:
		return color.FgHiWhite
	case 4:
		return color.FgCyan
	case 5:
		return color.FgGreen
	}
	return color.FgWhite
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
