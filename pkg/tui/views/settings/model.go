package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/tui/theme"
	"tableflip.dev/zenday/pkg/tui/ui"
)

// Ensure Model satisfies the Component interface.
var _ ui.Component = (*Model)(nil)

// SubmitMsg carries the draft when the user saves.
type SubmitMsg struct {
	Draft profile.Profile
}

// CancelMsg is emitted when the user closes the modal without saving.
type CancelMsg struct{}

const (
	inputName = iota
	inputBirthDate
	inputBirthTime
	inputCount
)

var inputLabels = [inputCount]string{"姓名 Name", "出生日期 YYYY-MM-DD", "出生时间 HH:mm"}

// Model is the settings overlay. It edits a private draft of the profile
// until the user submits.
type Model struct {
	Active bool

	inputs [inputCount]textinput.Model
	focus  int
	err    string

	width  int
	height int

	theme theme.ModalTheme
}

// New constructs a settings view model.
func New(th theme.ModalTheme) *Model {
	m := &Model{theme: th}
	placeholders := [inputCount]string{"旅人", "1990-01-01", "08:30"}
	limits := [inputCount]int{64, 10, 5}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		m.inputs[i] = ti
	}
	return m
}

// Open activates the modal with a draft copied from p.
func (m *Model) Open(p profile.Profile) tea.Cmd {
	m.Active = true
	m.err = ""
	m.inputs[inputName].SetValue(p.Name)
	m.inputs[inputBirthDate].SetValue(p.BirthDate)
	m.inputs[inputBirthTime].SetValue(p.BirthTime)
	return m.focusInput(inputName)
}

// Close deactivates the modal and drops the draft.
func (m *Model) Close() {
	m.Active = false
	m.err = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// SetError shows a validation failure under the form.
func (m *Model) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Draft returns the profile as currently typed.
func (m *Model) Draft() profile.Profile {
	return profile.Profile{
		Name:      m.inputs[inputName].Value(),
		BirthDate: m.inputs[inputBirthDate].Value(),
		BirthTime: m.inputs[inputBirthTime].Value(),
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize stores the available viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if !m.Active {
		return m, nil
	}
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return CancelMsg{} }
	case "tab", "down":
		return m, m.focusInput((m.focus + 1) % inputCount)
	case "shift+tab", "up":
		return m, m.focusInput((m.focus - 1 + inputCount) % inputCount)
	case "enter":
		if m.focus < inputCount-1 {
			return m, m.focusInput(m.focus + 1)
		}
		return m, m.submit()
	case "ctrl+s":
		return m, m.submit()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	draft := m.Draft()
	return func() tea.Msg { return SubmitMsg{Draft: draft} }
}

func (m *Model) focusInput(i int) tea.Cmd {
	for j := range m.inputs {
		if j != i {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
	return m.inputs[i].Focus()
}

// View renders the settings overlay.
func (m *Model) View() string {
	if !m.Active {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	lines := []string{m.theme.Title.Render("设置 Settings"), ""}
	for i := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = "→ "
		}
		lines = append(lines, m.theme.Body.Render(marker+inputLabels[i]))
		lines = append(lines, m.theme.Body.Render("  "+strings.TrimSuffix(m.inputs[i].View(), "\n")))
	}
	if m.err != "" {
		lines = append(lines, "", m.theme.Body.Render("⚠ "+m.err))
	}
	lines = append(lines, "", m.theme.Body.Render("Tab move · Enter next/save · Esc cancel"))

	frame := m.theme.Frame.Width(idealModalWidth(width))
	panel := frame.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

func idealModalWidth(width int) int {
	modalWidth := width - 8
	if modalWidth > 60 {
		modalWidth = 60
	}
	if modalWidth < 24 {
		modalWidth = width - 4
		if modalWidth < 20 {
			modalWidth = 20
		}
	}
	return modalWidth
}
