package journalform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/tui/theme"
	"tableflip.dev/zenday/pkg/tui/ui"
)

var _ ui.Component = (*Model)(nil)

// FieldChangedMsg is emitted when the user commits a value for one field.
type FieldChangedMsg struct {
	Field entry.Field
	Value string
}

// Model is the journal form. It renders the entry it is given and only keeps
// the cursor and the in-progress edit.
type Model struct {
	theme   theme.FormTheme
	entry   entry.Entry
	fields  []entry.Field
	focus   int
	editing bool
	input   textinput.Model

	width  int
	height int
}

func New(th theme.FormTheme) *Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 512
	return &Model{
		theme:  th,
		fields: entry.Fields(),
		input:  ti,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetEntry replaces the rendered entry. An edit in progress is kept.
func (m *Model) SetEntry(e entry.Entry) {
	m.entry = e
}

// Editing reports whether a text field is being edited, in which case the
// form wants every key.
func (m *Model) Editing() bool {
	return m.editing
}

// Focused returns the field under the cursor.
func (m *Model) Focused() entry.Field {
	return m.fields[m.focus]
}

func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m, m.handleEditKey(key)
	}
	return m, m.handleKey(key)
}

func (m *Model) handleKey(key tea.KeyPressMsg) tea.Cmd {
	field := m.Focused()
	switch key.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.fields)
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
	case "left", "right":
		delta := 1
		if key.String() == "left" {
			delta = -1
		}
		switch field {
		case entry.FieldMood:
			next := m.entry.Mood + delta
			if next < entry.MinMood || next > entry.MaxMood {
				return nil
			}
			return changed(field, fmt.Sprint(next))
		case entry.FieldHealthStatus:
			statuses := entry.HealthStatuses()
			idx := 0
			for i, s := range statuses {
				if s == m.entry.HealthStatus {
					idx = i
				}
			}
			idx += delta
			if idx < 0 || idx >= len(statuses) {
				return nil
			}
			return changed(field, string(statuses[idx]))
		}
	case "enter":
		if field == entry.FieldMood || field == entry.FieldHealthStatus {
			return nil
		}
		m.editing = true
		value := m.entry.Value(field)
		if !field.IsText() && value == "0" {
			value = ""
		}
		m.input.SetValue(value)
		m.input.CursorEnd()
		return m.input.Focus()
	}
	return nil
}

func (m *Model) handleEditKey(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		m.stopEditing()
		return nil
	case "enter":
		value := m.input.Value()
		if !m.Focused().IsText() {
			value = strings.TrimSpace(value)
		}
		field := m.Focused()
		m.stopEditing()
		return changed(field, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

func changed(f entry.Field, value string) tea.Cmd {
	return func() tea.Msg {
		return FieldChangedMsg{Field: f, Value: value}
	}
}

func (m *Model) View() string {
	lines := make([]string, 0, len(m.fields)+2)
	for i, f := range m.fields {
		label := m.theme.Label
		if i == m.focus {
			label = m.theme.FocusedLabel
		}
		lines = append(lines, label.Render(entry.FieldLabel(f))+" "+m.renderValue(f, i == m.focus))
	}
	lines = append(lines, "", m.theme.Placeholder.Render(m.help()))
	return strings.Join(lines, "\n")
}

func (m *Model) renderValue(f entry.Field, focused bool) string {
	if focused && m.editing {
		return m.input.View()
	}
	switch f {
	case entry.FieldMood:
		parts := make([]string, 0, entry.MaxMood)
		for mood := entry.MinMood; mood <= entry.MaxMood; mood++ {
			glyph := entry.MoodGlyph(mood)
			if mood == m.entry.Mood {
				glyph = m.theme.Selected.Render(glyph)
			}
			parts = append(parts, glyph)
		}
		return strings.Join(parts, " ")
	case entry.FieldHealthStatus:
		parts := make([]string, 0, 3)
		for _, s := range entry.HealthStatuses() {
			label := s.Label()
			if s == m.entry.HealthStatus {
				label = m.theme.Selected.Render(label)
			}
			parts = append(parts, label)
		}
		return strings.Join(parts, " ")
	}
	value := m.entry.Value(f)
	if value == "" || (!f.IsText() && value == "0") {
		return m.theme.Placeholder.Render(placeholder(f))
	}
	return m.theme.Value.Render(value)
}

func placeholder(f entry.Field) string {
	switch f {
	case entry.FieldMoodNote:
		return "今天感觉如何？"
	case entry.FieldRelationships:
		return "与谁相处？"
	case entry.FieldFinanceIncome, entry.FieldFinanceExpense:
		return "0"
	case entry.FieldFinanceNote:
		return "花在哪里？"
	case entry.FieldHealthNote:
		return "身体状况"
	case entry.FieldOtherEvents:
		return "其他事件"
	}
	return ""
}

func (m *Model) help() string {
	if m.editing {
		return "Enter save · Esc cancel"
	}
	switch m.Focused() {
	case entry.FieldMood, entry.FieldHealthStatus:
		return "←/→ change · Tab next"
	}
	return "Enter edit · Tab next"
}
