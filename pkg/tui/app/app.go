// Package app is the root Bubble Tea model. It renders an app.State and turns
// key presses into controller events; effects run as tea.Cmds so provider
// calls never block the UI.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	zen "tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/store"
	"tableflip.dev/zenday/pkg/tui/components/alert"
	"tableflip.dev/zenday/pkg/tui/components/almanaccard"
	"tableflip.dev/zenday/pkg/tui/components/analysisview"
	"tableflip.dev/zenday/pkg/tui/components/help"
	"tableflip.dev/zenday/pkg/tui/components/journalform"
	"tableflip.dev/zenday/pkg/tui/components/navbar"
	"tableflip.dev/zenday/pkg/tui/theme"
	"tableflip.dev/zenday/pkg/tui/views/settings"
)

// Model is the root UI model.
type Model struct {
	ctrl  *zen.Controller
	ctx   context.Context
	day   entry.Day
	state zen.State
	watch bool

	theme    theme.Theme
	nav      navbar.Model
	form     *journalform.Model
	settings *settings.Model
	help     *help.Model

	width  int
	height int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// Option customizes a Model.
type Option func(*Model)

// WithWatch toggles refreshing from store change events. On by default.
func WithWatch(on bool) Option {
	return func(m *Model) { m.watch = on }
}

// WithContext sets the context effects and the watch run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New builds the UI for day.
func New(ctrl *zen.Controller, day entry.Day, opts ...Option) *Model {
	th := theme.Default()
	m := &Model{
		ctrl:     ctrl,
		ctx:      context.Background(),
		day:      day,
		state:    zen.Initial(day),
		watch:    true,
		theme:    th,
		nav:      navbar.New(th.Nav),
		form:     journalform.New(th.Form),
		settings: settings.New(th.Modal),
		help:     help.New(80, 24),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.form.SetEntry(m.state.Journal)
	m.state.LoadingAlmanac = true
	return m
}

// State returns the state being rendered.
func (m *Model) State() zen.State {
	return m.state
}

// messages
type eventMsg struct{ ev zen.Event }
type errMsg struct{ err error }

// Init loads the mounted day and starts watching the store.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.mount()}
	if m.watch {
		cmds = append(cmds, startWatchCmd(m.ctx, m.ctrl))
	}
	return tea.Batch(cmds...)
}

func (m *Model) mount() tea.Cmd {
	ctrl, day := m.ctrl, m.day
	return func() tea.Msg {
		mounted, err := ctrl.Load(day)
		if err != nil {
			return errMsg{err}
		}
		return eventMsg{mounted}
	}
}

// apply reduces ev through the controller and schedules its effects.
func (m *Model) apply(ev zen.Event) tea.Cmd {
	st, effects := m.ctrl.Apply(ev)
	m.setState(st)
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.runEffect(eff))
	}
	return tea.Batch(cmds...)
}

func (m *Model) runEffect(eff zen.Effect) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		next, err := ctrl.Run(ctx, eff)
		if err != nil {
			if next != nil {
				return tea.BatchMsg{
					func() tea.Msg { return eventMsg{next} },
					func() tea.Msg { return errMsg{err} },
				}
			}
			return errMsg{err}
		}
		if next == nil {
			return nil
		}
		return eventMsg{next}
	}
}

func (m *Model) setState(st zen.State) {
	m.state = st
	m.form.SetEntry(st.Journal)
	m.nav.SetHelp(m.helpLine())
}

// Update handles messages and keybindings
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.settings.SetSize(msg.Width, msg.Height)
		m.help.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
	case eventMsg:
		cmds = append(cmds, m.apply(msg.ev))
	case errMsg:
		m.nav.SetError(msg.err)
	case journalform.FieldChangedMsg:
		if _, err := m.state.Journal.With(msg.Field, msg.Value); err != nil {
			m.nav.SetError(err)
			break
		}
		m.nav.SetStatus("")
		cmds = append(cmds, m.apply(zen.JournalFieldChanged{Field: msg.Field, Value: msg.Value}))
	case settings.SubmitMsg:
		p, err := profile.Complete(msg.Draft)
		if err != nil {
			m.settings.SetError(err)
			break
		}
		m.settings.Close()
		m.nav.SetStatus("已保存设置")
		cmds = append(cmds, m.apply(zen.SettingsSaved{Profile: p}))
	case settings.CancelMsg:
		m.settings.Close()
		cmds = append(cmds, m.apply(zen.CloseSettings{}))
	case watchStartedMsg:
		if msg.err != nil {
			m.nav.SetError(fmt.Errorf("watch: %w", msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.handleWatchEvent(msg.event))
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPress(msg))
	default:
		if m.help.Active {
			_, cmd := m.help.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.settings.Active {
			_, cmd := m.settings.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.form.Editing() {
			_, cmd := m.form.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		m.stopWatch()
		return tea.Quit
	}

	if m.state.Alert != "" {
		if key == "enter" || key == "esc" {
			return m.apply(zen.AlertDismissed{})
		}
		return nil
	}

	if m.help.Active {
		_, cmd := m.help.Update(msg)
		return cmd
	}

	if m.settings.Active {
		_, cmd := m.settings.Update(msg)
		return cmd
	}

	if m.state.View == zen.ViewJournal && m.form.Editing() {
		_, cmd := m.form.Update(msg)
		return cmd
	}

	switch key {
	case "q":
		m.stopWatch()
		return tea.Quit
	case "1", "h":
		return m.apply(zen.Navigate{View: zen.ViewHome})
	case "2", "j":
		return m.apply(zen.Navigate{View: zen.ViewJournal})
	case "3", "a":
		return m.apply(zen.Navigate{View: zen.ViewAnalysis})
	case "s":
		open := m.settings.Open(m.state.Profile)
		return tea.Batch(m.apply(zen.OpenSettings{}), open)
	case "?":
		m.help.Toggle()
		return nil
	}

	switch m.state.View {
	case zen.ViewJournal:
		_, cmd := m.form.Update(msg)
		return cmd
	case zen.ViewAnalysis:
		if key == "enter" {
			if err := zen.AnalysisBlocker(m.state); err != nil {
				m.nav.SetError(err)
				return nil
			}
			m.nav.SetStatus("")
			return m.apply(zen.AnalysisRequested{})
		}
	}
	return nil
}

func (m *Model) helpLine() string {
	switch m.state.View {
	case zen.ViewJournal:
		return "Tab field · s settings · ? help · q quit"
	case zen.ViewAnalysis:
		return "Enter analyse · s settings · ? help · q quit"
	}
	return "s settings · ? help · q quit"
}

// View renders the active screen, or the overlay when one is open.
func (m *Model) View() string {
	if m.state.Alert != "" {
		return alert.Render(m.theme.Alert, m.state.Alert, m.width, m.height)
	}
	if m.help.Active {
		return m.help.View()
	}
	if m.settings.Active {
		return m.settings.View()
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var body string
	switch m.state.View {
	case zen.ViewJournal:
		body = m.renderJournal()
	case zen.ViewAnalysis:
		body = analysisview.Render(m.theme, m.state, width)
	default:
		body = m.renderHome(width)
	}

	footer := m.nav.View(m.state.View, width)
	if m.height > 0 {
		used := strings.Count(body, "\n") + 1 + strings.Count(footer, "\n") + 1
		if pad := m.height - used; pad > 0 {
			body += strings.Repeat("\n", pad)
		}
	}
	return body + "\n" + footer
}

func (m *Model) renderHome(width int) string {
	lines := []string{
		m.theme.Panel.Greeting.Render(fmt.Sprintf("你好, %s。", m.state.Profile.DisplayName())),
	}
	date := m.state.Day.String()
	if m.state.LoadingAlmanac {
		date = "..."
	}
	lines = append(lines,
		m.theme.Panel.Title.Render(date),
		"",
		almanaccard.Render(m.theme.Almanac, m.state.Almanac, m.state.LoadingAlmanac, width),
		"",
		m.theme.Panel.Body.Render("✍️  记录日常 (2)    🔮 AI 解读 (3)"),
	)
	if m.state.Profile.IsSetup {
		lines = append(lines, "",
			m.theme.Panel.Muted.Render("YOUR BAZI REF"),
			m.theme.Panel.Body.Render(m.state.Profile.BirthDate+" "+m.state.Profile.BirthTime),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderJournal() string {
	title := m.theme.Panel.Title.Render(fmt.Sprintf("今日记录 %s", m.state.Journal.Date))
	return title + "\n\n" + m.form.View()
}

// Run launches the UI for today and blocks until it exits.
func Run(ctx context.Context, ctrl *zen.Controller) error {
	m := New(ctrl, entry.Today(time.Now()), WithContext(ctx))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.stopWatch()
	return err
}
