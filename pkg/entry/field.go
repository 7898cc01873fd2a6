package entry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names an editable journal field. Values match the persisted JSON keys.
type Field string

const (
	FieldMood           Field = "mood"
	FieldMoodNote       Field = "moodNote"
	FieldRelationships  Field = "relationships"
	FieldFinanceIncome  Field = "financeIncome"
	FieldFinanceExpense Field = "financeExpense"
	FieldFinanceNote    Field = "financeNote"
	FieldHealthStatus   Field = "healthStatus"
	FieldHealthNote     Field = "healthNote"
	FieldOtherEvents    Field = "otherEvents"
)

// Fields returns every editable field in form order.
func Fields() []Field {
	return []Field{
		FieldMood,
		FieldMoodNote,
		FieldFinanceIncome,
		FieldFinanceExpense,
		FieldFinanceNote,
		FieldRelationships,
		FieldHealthStatus,
		FieldHealthNote,
		FieldOtherEvents,
	}
}

// ParseField matches raw case-insensitively against the field names, also
// accepting kebab-case (mood-note).
func ParseField(raw string) (Field, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""))
	for _, f := range Fields() {
		if strings.ToLower(string(f)) == norm {
			return f, nil
		}
	}
	return "", fmt.Errorf("entry: unknown field %q", raw)
}

// IsText reports whether the field holds free text.
func (f Field) IsText() bool {
	switch f {
	case FieldMoodNote, FieldRelationships, FieldFinanceNote, FieldHealthNote, FieldOtherEvents:
		return true
	}
	return false
}

// With returns a copy of e with only field set to raw. The entry is left
// untouched when raw does not parse for that field.
func (e Entry) With(field Field, raw string) (Entry, error) {
	out := e
	switch field {
	case FieldMood:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < MinMood || n > MaxMood {
			return e, fmt.Errorf("entry: mood must be %d-%d, got %q", MinMood, MaxMood, raw)
		}
		out.Mood = n
	case FieldFinanceIncome, FieldFinanceExpense:
		n, err := parseAmount(raw)
		if err != nil {
			return e, fmt.Errorf("entry: %s: %w", field, err)
		}
		if field == FieldFinanceIncome {
			out.FinanceIncome = n
		} else {
			out.FinanceExpense = n
		}
	case FieldHealthStatus:
		hs, err := ParseHealthStatus(raw)
		if err != nil {
			return e, err
		}
		out.HealthStatus = hs
	case FieldMoodNote:
		out.MoodNote = raw
	case FieldRelationships:
		out.Relationships = raw
	case FieldFinanceNote:
		out.FinanceNote = raw
	case FieldHealthNote:
		out.HealthNote = raw
	case FieldOtherEvents:
		out.OtherEvents = raw
	default:
		return e, fmt.Errorf("entry: unknown field %q", field)
	}
	return out, nil
}

// Value renders the current value of field as the string With accepts.
func (e Entry) Value(field Field) string {
	switch field {
	case FieldMood:
		return strconv.Itoa(e.Mood)
	case FieldFinanceIncome:
		return formatAmount(e.FinanceIncome)
	case FieldFinanceExpense:
		return formatAmount(e.FinanceExpense)
	case FieldHealthStatus:
		return string(e.HealthStatus)
	case FieldMoodNote:
		return e.MoodNote
	case FieldRelationships:
		return e.Relationships
	case FieldFinanceNote:
		return e.FinanceNote
	case FieldHealthNote:
		return e.HealthNote
	case FieldOtherEvents:
		return e.OtherEvents
	}
	return ""
}

// ParseHealthStatus accepts Good, Fair or Poor in any case.
func ParseHealthStatus(raw string) (HealthStatus, error) {
	for _, hs := range HealthStatuses() {
		if strings.EqualFold(strings.TrimSpace(raw), string(hs)) {
			return hs, nil
		}
	}
	return "", fmt.Errorf("entry: health status must be Good, Fair or Poor, got %q", raw)
}

// An empty amount clears the field, matching a blanked number input.
func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return n, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
