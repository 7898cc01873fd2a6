package app

import (
	"context"
	"sort"

	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/store"
)

// HistoryItem summarises one journaled day.
type HistoryItem struct {
	Day         entry.Day `json:"date"`
	Mood        int       `json:"mood"`
	HasNotes    bool      `json:"hasNotes"`
	HasAnalysis bool      `json:"hasAnalysis"`
	Score       *int      `json:"score,omitempty"`
}

// History lists the days that have a journal entry, newest first.
func (c *Controller) History(ctx context.Context) ([]HistoryItem, error) {
	if c.Persistence == nil {
		return nil, errNoPersistence
	}
	days := c.journalDays(ctx)
	items := make([]HistoryItem, 0, len(days))
	for _, day := range days {
		var e entry.Entry
		found, err := c.Persistence.Load(store.JournalKey(day.String()), &e)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		item := HistoryItem{Day: day, Mood: e.Mood, HasNotes: e.HasJournalData()}
		res, err := c.StoredAnalysis(day)
		if err != nil {
			return nil, err
		}
		if res != nil {
			score := res.OverallScore
			item.HasAnalysis = true
			item.Score = &score
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Controller) journalDays(ctx context.Context) []entry.Day {
	var days []entry.Day
	for _, key := range c.Persistence.Keys(ctx, string(store.NamespaceJournal)+":") {
		ns, raw, err := store.SplitKey(key)
		if err != nil || ns != store.NamespaceJournal {
			continue
		}
		day, err := entry.ParseDay(raw)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}
