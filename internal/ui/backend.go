package ui

import (
	"github.com/atomicstack/window-switcher/internal/backend"
	"github.com/atomicstack/window-switcher/internal/logging"
	"github.com/atomicstack/window-switcher/internal/switcher"
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

// teardownMsg is sent by the session manager when a newer session is about
// to replace this one.
type teardownMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok || m.closed {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.watcher == nil {
		return cmd
	}
	waitCmd := waitForBackendEvent(m.watcher)
	if cmd != nil {
		return tea.Batch(cmd, waitCmd)
	}
	return waitCmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		logging.Error(evt.Err)
		return nil
	}
	m.errMsg = ""
	return m.dispatch(switcher.SnapshotUpdated{Snapshot: evt.Snapshot})
}

func (m *Model) handleTeardownMsg(tea.Msg) tea.Cmd {
	if m.closed {
		return tea.Quit
	}
	return m.dispatch(switcher.Dismiss{})
}
