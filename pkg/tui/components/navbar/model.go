package navbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/tui/theme"
)

var labels = map[app.View]string{
	app.ViewHome:     "1 首页",
	app.ViewJournal:  "2 记录",
	app.ViewAnalysis: "3 解读",
}

// Model tracks footer/help/status rendering state.
type Model struct {
	theme      theme.NavTheme
	helpLine   string
	statusLine string
	isError    bool
}

// New returns a footer model with the default help line.
func New(th theme.NavTheme) Model {
	return Model{
		theme:    th,
		helpLine: "s settings · q quit",
	}
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
	m.isError = false
}

// SetError shows err as the status line.
func (m *Model) SetError(err error) {
	if err == nil {
		m.SetStatus("")
		return
	}
	m.statusLine = err.Error()
	m.isError = true
}

func (m Model) Status() string {
	return m.statusLine
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	if m.statusLine == "" {
		return 1
	}
	return 2
}

// View renders the tab row and, when set, the status line.
func (m Model) View(current app.View, width int) string {
	tabs := make([]string, 0, len(app.Views()))
	for _, v := range app.Views() {
		style := m.theme.Tab
		if v == current {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(labels[v]))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.helpLine != "" {
		gap := width - lipgloss.Width(row) - lipgloss.Width(m.helpLine)
		if gap < 2 {
			gap = 2
		}
		row += strings.Repeat(" ", gap) + m.theme.Help.Render(m.helpLine)
	}
	if m.statusLine == "" {
		return row
	}
	status := m.theme.Status.Render(m.statusLine)
	if m.isError {
		status = m.theme.StatusError.Render(m.statusLine)
	}
	return status + "\n" + row
}
