package ui

import (
	"github.com/atomicstack/kaomoji-picker/internal/hotkey"
	"github.com/atomicstack/kaomoji-picker/internal/logging"
	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForHotkey(src hotkey.Source) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-src.Events()
		if !ok {
			return hotkeyDoneMsg{source: src.Name()}
		}
		return hotkeyMsg{event: evt}
	}
}

type hotkeyMsg struct {
	event hotkey.Event
}

type hotkeyDoneMsg struct {
	source string
}

type startupActivateMsg struct{}

func (m *Model) handleHotkeyMsg(msg tea.Msg) tea.Cmd {
	hk, ok := msg.(hotkeyMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	if hk.event.Err != nil {
		events.Hotkey.Error(hk.event.Source, hk.event.Err)
		logging.Error(hk.event.Err)
	} else {
		events.Hotkey.Fired(hk.event.Source)
		cmd = m.activate()
	}
	if m.hotkey != nil {
		return batch(nonNil(cmd, waitForHotkey(m.hotkey)))
	}
	return cmd
}

func (m *Model) handleHotkeyDoneMsg(msg tea.Msg) tea.Cmd {
	done, _ := msg.(hotkeyDoneMsg)
	events.Hotkey.Closed(done.source)
	m.hotkey = nil
	return nil
}

func (m *Model) handleStartupActivateMsg(tea.Msg) tea.Cmd {
	events.Hotkey.Fired("startup")
	return m.activate()
}
