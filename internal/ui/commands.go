package ui

import (
	"fmt"

	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	"github.com/atomicstack/kaomoji-picker/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	switch result.ID {
	case command.IDCopy:
		// Clipboard failures never reopen the picker; they only show up in
		// the idle status line.
		if result.Err != nil {
			m.statusMsg = ""
			m.errMsg = result.Err.Error()
			events.Clipboard.Failed(result.Err)
			return nil
		}
		m.errMsg = ""
		m.statusMsg = fmt.Sprintf("copied %s", result.Label)
		events.Clipboard.Copied(result.Label)
	case command.IDFocusShow, command.IDFocusHide:
		if result.Err != nil && !m.controller.Visible() {
			m.errMsg = fmt.Sprintf("tmux focus: %v", result.Err)
		}
	}
	return nil
}
