package journalform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/tui/theme"
)

func key(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func changedMsg(t *testing.T, cmd tea.Cmd) (FieldChangedMsg, bool) {
	t.Helper()
	if cmd == nil {
		return FieldChangedMsg{}, false
	}
	msg, ok := cmd().(FieldChangedMsg)
	return msg, ok
}

func newForm() *Model {
	m := New(theme.Default().Form)
	m.SetEntry(entry.New("2024-02-19"))
	return m
}

func TestMoodArrows(t *testing.T) {
	m := newForm()
	if m.Focused() != entry.FieldMood {
		t.Fatalf("expected mood focused first, got %s", m.Focused())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	msg, ok := changedMsg(t, cmd)
	if !ok || msg.Field != entry.FieldMood || msg.Value != "4" {
		t.Fatalf("unexpected change %+v", msg)
	}

	e := entry.New("2024-02-19")
	e.Mood = entry.MaxMood
	m.SetEntry(e)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyRight}); cmd != nil {
		t.Fatalf("mood must not go past %d", entry.MaxMood)
	}
}

func TestHealthCycles(t *testing.T) {
	m := newForm()
	for m.Focused() != entry.FieldHealthStatus {
		m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	msg, ok := changedMsg(t, cmd)
	if !ok || msg.Field != entry.FieldHealthStatus || msg.Value == string(entry.New("2024-02-19").HealthStatus) {
		t.Fatalf("expected a new health status, got %+v", msg)
	}
}

func TestEditTextField(t *testing.T) {
	m := newForm()
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Focused() != entry.FieldMoodNote {
		t.Fatalf("expected moodNote, got %s", m.Focused())
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Editing() {
		t.Fatalf("expected editing")
	}
	for _, r := range "平静" {
		m.Update(key(r, string(r)))
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := changedMsg(t, cmd)
	if !ok || msg.Field != entry.FieldMoodNote || msg.Value != "平静" {
		t.Fatalf("unexpected change %+v", msg)
	}
	if m.Editing() {
		t.Fatalf("enter should end the edit")
	}
}

func TestEditCancel(t *testing.T) {
	m := newForm()
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(key('x', "x"))
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Fatalf("esc must not commit")
	}
	if m.Editing() {
		t.Fatalf("esc should end the edit")
	}
}

func TestViewShowsPlaceholders(t *testing.T) {
	m := newForm()
	view := m.View()
	for _, want := range []string{"今天感觉如何？", entry.FieldLabel(entry.FieldOtherEvents)} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
