// Package entry defines the per-day journal entry and its field-level edits.
package entry

import (
	"github.com/google/uuid"
)

// HealthStatus is the coarse self-reported health for a day.
type HealthStatus string

const (
	HealthGood HealthStatus = "Good"
	HealthFair HealthStatus = "Fair"
	HealthPoor HealthStatus = "Poor"
)

// HealthStatuses returns the selectable health values in display order.
func HealthStatuses() []HealthStatus {
	return []HealthStatus{HealthGood, HealthFair, HealthPoor}
}

const (
	MinMood     = 1
	MaxMood     = 5
	DefaultMood = 3
)

// Entry is one journal page. Date is the entry's key; there is at most one
// entry per calendar day.
type Entry struct {
	ID             string       `json:"id"`
	Date           Day          `json:"date"`
	Mood           int          `json:"mood"`
	MoodNote       string       `json:"moodNote"`
	Relationships  string       `json:"relationships"`
	FinanceIncome  float64      `json:"financeIncome"`
	FinanceExpense float64      `json:"financeExpense"`
	FinanceNote    string       `json:"financeNote"`
	HealthStatus   HealthStatus `json:"healthStatus"`
	HealthNote     string       `json:"healthNote"`
	OtherEvents    string       `json:"otherEvents"`
}

// New returns the default entry for day.
func New(day Day) Entry {
	return Entry{
		ID:           uuid.NewString(),
		Date:         day,
		Mood:         DefaultMood,
		HealthStatus: HealthFair,
	}
}

// HasJournalData reports whether any of the free-text fields that gate
// analysis carry content. Mood and the numeric finance fields do not count.
func (e Entry) HasJournalData() bool {
	return len(e.MoodNote) > 0 || len(e.OtherEvents) > 0 || len(e.FinanceNote) > 0
}
