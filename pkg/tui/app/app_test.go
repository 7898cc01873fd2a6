package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	zen "tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/store"
	"tableflip.dev/zenday/pkg/store/storetest"
	"tableflip.dev/zenday/pkg/tui/components/journalform"
	"tableflip.dev/zenday/pkg/tui/views/settings"
)

const (
	day          = entry.Day("2024-02-19")
	almanacReply = `{"ganZhi":"甲辰年 丙寅月 戊午日","solarTerm":"雨水","yi":["出行","会友","读书","纳财"],"ji":["动土"],"description":"春水初生。"}`
	analysisJSON = `{"baziAnalysis":"午火当令","advice":"早睡早起","overallScore":82}`
)

type routed struct {
	analysis llm.Generator
}

func (r routed) Generate(ctx context.Context, req llm.Request) ([]byte, error) {
	for _, name := range req.Schema.Required() {
		if name == "overallScore" {
			return r.analysis.Generate(ctx, req)
		}
	}
	return []byte(almanacReply), nil
}

func newModel(t *testing.T, analysis llm.Generator) (*Model, *storetest.Memory) {
	t.Helper()
	mem := storetest.New()
	ctrl := zen.New(mem, routed{analysis: analysis}, nil)
	m := New(ctrl, day, WithWatch(false))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drain(t, m, m.Init())
	return m, mem
}

// drain runs cmd and every command its messages produce. Commands that do
// not return promptly, like cursor blinks, are dropped along with any message
// the model does not own.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := run(c).(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case eventMsg, errMsg, journalform.FieldChangedMsg, settings.SubmitMsg, settings.CancelMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func run(c tea.Cmd) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- c() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "tab":
			msg = tea.KeyPressMsg{Code: tea.KeyTab}
		case "left":
			msg = tea.KeyPressMsg{Code: tea.KeyLeft}
		case "right":
			msg = tea.KeyPressMsg{Code: tea.KeyRight}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		_, cmd := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		drain(t, m, cmd)
	}
}

func TestMountLoadsAlmanac(t *testing.T) {
	m, mem := newModel(t, llm.Fail(errors.New("unused")))
	st := m.State()
	if st.Almanac == nil || st.LoadingAlmanac {
		t.Fatalf("expected almanac loaded, got %+v", st)
	}
	if !mem.Has(store.AlmanacKey(day.String())) {
		t.Fatalf("expected almanac cached")
	}
	view := m.View()
	for _, want := range []string{"你好, 旅人。", "雨水", "出行", "读书", "春水初生"} {
		if !strings.Contains(view, want) {
			t.Errorf("home view missing %q", want)
		}
	}
	if strings.Contains(view, "纳财") {
		t.Errorf("home view should show only the first three yi items")
	}
}

func TestNavigationKeys(t *testing.T) {
	m, _ := newModel(t, nil)
	press(t, m, "2")
	if m.State().View != zen.ViewJournal {
		t.Fatalf("expected JOURNAL, got %s", m.State().View)
	}
	press(t, m, "a")
	if m.State().View != zen.ViewAnalysis {
		t.Fatalf("expected ANALYSIS, got %s", m.State().View)
	}
	press(t, m, "h")
	if m.State().View != zen.ViewHome {
		t.Fatalf("expected HOME, got %s", m.State().View)
	}
}

func TestSettingsModalSavesProfile(t *testing.T) {
	m, mem := newModel(t, nil)
	press(t, m, "3", "s")
	if !m.State().SettingsOpen || !m.settings.Active {
		t.Fatalf("expected settings open")
	}
	if !strings.Contains(m.View(), "设置") {
		t.Fatalf("expected settings modal in view")
	}

	typeText(t, m, "Alex")
	press(t, m, "enter")
	typeText(t, m, "1990-01-01")
	press(t, m, "enter")
	typeText(t, m, "08:30")
	press(t, m, "enter")

	st := m.State()
	if st.SettingsOpen || m.settings.Active {
		t.Fatalf("expected settings closed after save")
	}
	if st.View != zen.ViewAnalysis {
		t.Fatalf("expected to return to ANALYSIS, got %s", st.View)
	}
	var stored profile.Profile
	if found, _ := mem.Load(store.ProfileKey(), &stored); !found || !stored.IsSetup || stored.Name != "Alex" {
		t.Fatalf("expected profile persisted, got %+v", stored)
	}
}

func TestSettingsModalKeepsDraftOnValidationError(t *testing.T) {
	m, mem := newModel(t, nil)
	press(t, m, "s")
	typeText(t, m, "Alex")
	press(t, m, "enter", "enter", "enter")
	if !m.settings.Active {
		t.Fatalf("incomplete profile should keep the modal open")
	}
	if mem.Has(store.ProfileKey()) {
		t.Fatalf("incomplete profile must not be persisted")
	}
	press(t, m, "esc")
	if m.settings.Active || m.State().SettingsOpen {
		t.Fatalf("esc should close settings")
	}
}

func TestJournalFormEditsAndPersists(t *testing.T) {
	m, mem := newModel(t, nil)
	press(t, m, "2", "right", "right")
	if m.State().Journal.Mood != 5 {
		t.Fatalf("expected mood 5, got %d", m.State().Journal.Mood)
	}

	press(t, m, "tab", "enter")
	if !m.form.Editing() {
		t.Fatalf("expected moodNote editing")
	}
	typeText(t, m, "hi")
	if m.State().View != zen.ViewJournal {
		t.Fatalf("typing h while editing must not navigate")
	}
	press(t, m, "enter")

	var stored entry.Entry
	if found, _ := mem.Load(store.JournalKey(day.String()), &stored); !found {
		t.Fatalf("expected journal persisted")
	}
	if stored.Mood != 5 || stored.MoodNote != "hi" {
		t.Fatalf("unexpected stored entry %+v", stored)
	}
}

func TestJournalSaveFailureRevertsForm(t *testing.T) {
	m, mem := newModel(t, nil)
	press(t, m, "2")
	before := m.State().Journal

	mem.FailSave = errors.New("disk full")
	press(t, m, "right")
	if m.State().Journal != before {
		t.Fatalf("expected unsaved mood reverted, got %+v", m.State().Journal)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Fatalf("expected save error in the status line:\n%s", m.View())
	}
}

func TestAnalysisFlow(t *testing.T) {
	gen := llm.Succeed(analysisJSON)
	m, mem := newModel(t, gen)

	press(t, m, "3")
	if !strings.Contains(m.View(), "请先在设置中填写出生信息") {
		t.Fatalf("expected locked analysis view")
	}
	press(t, m, "enter")
	if gen.Calls() != 0 {
		t.Fatalf("locked analysis must not call the service")
	}

	if _, err := m.ctrl.SaveSettings(context.Background(), profile.Profile{Name: "Alex", BirthDate: "1990-01-01", BirthTime: "08:30"}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	m.setState(m.ctrl.State())
	if !strings.Contains(m.View(), "请先填写今日记录") {
		t.Fatalf("expected disabled trigger without notes")
	}

	press(t, m, "2", "tab", "enter")
	typeText(t, m, "ok")
	press(t, m, "enter", "3", "enter")

	if gen.Calls() != 1 {
		t.Fatalf("expected one analysis call, got %d", gen.Calls())
	}
	st := m.State()
	if st.LoadingAnalysis || st.Analysis == nil || st.Analysis.OverallScore != 82 {
		t.Fatalf("unexpected state %+v", st)
	}
	if !mem.Has(store.AnalysisKey(day.String())) {
		t.Fatalf("expected analysis persisted")
	}
	view := m.View()
	for _, want := range []string{"82", "午火当令", "生活建议", "早睡早起"} {
		if !strings.Contains(view, want) {
			t.Errorf("analysis view missing %q", want)
		}
	}
}

func TestAnalysisPersistenceFailureShowsAlert(t *testing.T) {
	m, mem := newModel(t, llm.Succeed(analysisJSON))
	ctx := context.Background()
	if _, err := m.ctrl.SaveSettings(ctx, profile.Profile{Name: "Alex", BirthDate: "1990-01-01", BirthTime: "08:30"}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if _, err := m.ctrl.ChangeJournalField(ctx, entry.FieldOtherEvents, "下雨"); err != nil {
		t.Fatalf("ChangeJournalField: %v", err)
	}
	m.setState(m.ctrl.State())
	mem.FailSave = errors.New("disk full")

	press(t, m, "3", "enter")
	st := m.State()
	if st.Alert != zen.AlertAnalysisFailed || st.LoadingAnalysis {
		t.Fatalf("expected alert with loading cleared, got %+v", st)
	}
	if !strings.Contains(m.View(), zen.AlertAnalysisFailed) {
		t.Fatalf("expected alert rendered")
	}
	press(t, m, "2")
	if m.State().View != zen.ViewAnalysis {
		t.Fatalf("alert should block navigation")
	}
	press(t, m, "enter")
	if m.State().Alert != "" {
		t.Fatalf("expected alert dismissed")
	}
}

func TestWatchEventReloadsJournal(t *testing.T) {
	m, mem := newModel(t, nil)
	e := m.State().Journal
	e.OtherEvents = "命令行写入"
	if err := mem.Save(store.JournalKey(day.String()), e); err != nil {
		t.Fatalf("Save: %v", err)
	}
	drain(t, m, m.handleWatchEvent(store.Event{Type: store.EventKeyChanged, Key: store.JournalKey(day.String())}))
	if m.State().Journal.OtherEvents != "命令行写入" {
		t.Fatalf("expected journal reloaded, got %+v", m.State().Journal)
	}

	if cmd := m.handleWatchEvent(store.Event{Type: store.EventKeyChanged, Key: store.JournalKey("2024-01-01")}); cmd != nil {
		t.Fatalf("other days should be ignored")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		batch, isBatch := cmd().(tea.BatchMsg)
		found := false
		if isBatch {
			for _, c := range batch {
				if c == nil {
					continue
				}
				if _, ok := c().(tea.QuitMsg); ok {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("expected tea.QuitMsg")
		}
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newModel(t, nil)
	press(t, m, "?")
	if !m.help.Active {
		t.Fatalf("expected help open")
	}
	press(t, m, "2")
	if m.State().View != zen.ViewHome {
		t.Fatalf("keys should go to the help overlay")
	}
	press(t, m, "esc")
	if m.help.Active {
		t.Fatalf("expected help closed")
	}
}
