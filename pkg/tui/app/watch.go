package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	zen "tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, ctrl *zen.Controller) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := ctrl.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent reloads the records another process changed for the
// mounted day.
func (m *Model) handleWatchEvent(ev store.Event) tea.Cmd {
	switch ev.Type {
	case store.EventKeyChanged:
		ns, day, err := store.SplitKey(ev.Key)
		if err != nil {
			return nil
		}
		switch {
		case ns == store.NamespaceProfile:
			return m.reloadProfile()
		case ns == store.NamespaceJournal && day == m.state.Day.String():
			return m.reloadJournal()
		}
	case store.EventInvalidated:
		return tea.Batch(m.reloadProfile(), m.reloadJournal())
	}
	return nil
}

func (m *Model) reloadJournal() tea.Cmd {
	ctrl, day := m.ctrl, m.state.Day
	return func() tea.Msg {
		var e entry.Entry
		found, err := ctrl.Persistence.Load(store.JournalKey(day.String()), &e)
		if err != nil {
			return errMsg{err}
		}
		if !found {
			return nil
		}
		return eventMsg{zen.JournalReloaded{Entry: e}}
	}
}

func (m *Model) reloadProfile() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		p, err := ctrl.Profile()
		if err != nil {
			return errMsg{err}
		}
		return eventMsg{zen.ProfileReloaded{Profile: p}}
	}
}
