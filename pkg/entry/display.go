package entry

var moodGlyphs = [...]string{"😫", "😔", "😐", "🙂", "🤩"}

// MoodGlyph returns the face for a 1-5 mood, or "?" when out of range.
func MoodGlyph(mood int) string {
	if mood < MinMood || mood > MaxMood {
		return "?"
	}
	return moodGlyphs[mood-1]
}

// Label returns the display label for the status.
func (h HealthStatus) Label() string {
	switch h {
	case HealthGood:
		return "舒适"
	case HealthFair:
		return "一般"
	case HealthPoor:
		return "不适"
	}
	return string(h)
}

// FieldLabel returns the form label for a field.
func FieldLabel(f Field) string {
	switch f {
	case FieldMood:
		return "Mood"
	case FieldMoodNote:
		return "Mood note"
	case FieldRelationships:
		return "Relationships"
	case FieldFinanceIncome:
		return "Income"
	case FieldFinanceExpense:
		return "Expense"
	case FieldFinanceNote:
		return "Finance note"
	case FieldHealthStatus:
		return "Health"
	case FieldHealthNote:
		return "Health note"
	case FieldOtherEvents:
		return "Other events"
	}
	return string(f)
}
