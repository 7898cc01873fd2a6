package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
)

func TestHelpRendersKeys(t *testing.T) {
	m := New(80, 120)
	m.Toggle()
	if !m.Active {
		t.Fatalf("expected overlay active")
	}
	view := m.View()
	for _, want := range []string{"Journal", "settings", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("help missing %q", want)
		}
	}
	if strings.Contains(view, "help unavailable") {
		t.Fatalf("unexpected render error: %q", view)
	}
}

func TestHelpCloses(t *testing.T) {
	m := New(80, 40)
	m.Toggle()
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.Active {
		t.Fatalf("esc should close help")
	}
	m.Toggle()
	m.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	if m.Active {
		t.Fatalf("? should close help")
	}
}
