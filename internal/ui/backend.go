package ui

import (
	"github.com/atomicstack/tmux-menubar/internal/backend"
	"github.com/atomicstack/tmux-menubar/internal/logging"
	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent feeds the dispatcher and re-syncs the bar when the
// session menu or server reachability changed. Open dropdowns keep their
// projection until reopened.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		logging.Errorf("backend", res.Err)
		return
	}
	switch {
	case res.ServerChanged:
		events.Backend.Server(m.socketPath, evt.Reachable)
	case evt.Kind == backend.KindSessions:
		events.Backend.Sessions(len(evt.Sessions), res.MenuChanged)
	}
	if res.MenuChanged {
		m.bar.Refresh()
	}
}
