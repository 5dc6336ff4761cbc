package ui

import (
	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	"github.com/atomicstack/kaomoji-picker/internal/picker"
	"github.com/atomicstack/kaomoji-picker/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if !m.controller.Visible() {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Dismiss):
		return m.dispatch(picker.Dismiss{})
	case key.Matches(keyMsg, m.keys.Commit):
		return m.commit()
	case key.Matches(keyMsg, m.keys.Up):
		return m.navigate(-1)
	case key.Matches(keyMsg, m.keys.Down):
		return m.navigate(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		return m.navigate(-m.pageSize())
	case key.Matches(keyMsg, m.keys.PageDown):
		return m.navigate(m.pageSize())
	case key.Matches(keyMsg, m.keys.Home):
		return m.navigate(-len(m.controller.View()))
	case key.Matches(keyMsg, m.keys.End):
		return m.navigate(len(m.controller.View()))
	case key.Matches(keyMsg, m.keys.Clear):
		return m.clearQuery()
	}
	return m.updateQuery(keyMsg)
}

func (m *Model) activate() tea.Cmd {
	return m.dispatch(picker.Activate{})
}

func (m *Model) navigate(delta int) tea.Cmd {
	if delta == 0 {
		return nil
	}
	cmd := m.dispatch(picker.Navigate{Delta: delta})
	events.Cursor.Move(delta, m.controller.Cursor())
	return cmd
}

func (m *Model) commit() tea.Cmd {
	entry, ok := m.controller.Current()
	if !ok {
		events.Picker.NoMatch(m.controller.Query())
		return nil
	}
	events.Picker.Commit(entry.Line(), m.controller.Query(), m.controller.Cursor())
	return m.dispatch(picker.Commit{})
}

// dispatch feeds one event to the controller and carries out the effects it
// returns, in order. Effect commands run in sequence, so a copy finishes
// before the focus moves away.
func (m *Model) dispatch(ev picker.Event) tea.Cmd {
	effects := m.controller.Handle(ev)
	if len(effects) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, eff := range effects {
		if cmd := m.applyEffect(eff, ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

func (m *Model) applyEffect(eff picker.Effect, cause picker.Event) tea.Cmd {
	switch eff.Kind {
	case picker.EffectSetQuery:
		m.query.SetValue(eff.Text)
		m.query.CursorEnd()
	case picker.EffectRender:
		if _, ok := cause.(picker.QueryChanged); ok {
			m.resetClick()
		}
		m.syncViewport()
	case picker.EffectShow:
		m.statusMsg = ""
		m.errMsg = ""
		m.resetClick()
		events.Picker.Show(len(m.controller.View()))
		if m.focus != nil {
			return m.bus.Execute(command.Request{ID: command.IDFocusShow, Label: "show", Run: m.focus.Show})
		}
	case picker.EffectFocusQuery:
		return m.query.Focus()
	case picker.EffectCenter:
		m.offset = 0
		m.syncViewport()
	case picker.EffectCopy:
		payload := eff.Text
		sink := m.clipboard
		return m.bus.Execute(command.Request{
			ID:    command.IDCopy,
			Label: payload,
			Run:   func() error { return sink.SetText(payload) },
		})
	case picker.EffectHide:
		m.query.Blur()
		m.resetClick()
		events.Picker.Hide(hideReason(cause))
		if m.focus != nil {
			return m.bus.Execute(command.Request{ID: command.IDFocusHide, Label: "hide", Run: m.focus.Hide})
		}
	}
	return nil
}

func hideReason(ev picker.Event) string {
	switch ev.(type) {
	case picker.Commit:
		return "commit"
	case picker.DoubleActivate:
		return "double-click"
	case picker.Dismiss:
		return "dismiss"
	}
	return "unknown"
}

func (m *Model) pageSize() int {
	if visible := m.maxVisibleItems(); visible > 0 {
		return visible
	}
	return len(m.controller.View())
}

// syncViewport adjusts the scroll offset so the cursor stays visible.
func (m *Model) syncViewport() {
	total := len(m.controller.View())
	cursor := m.controller.Cursor()
	maxVisible := m.maxVisibleItems()
	if total == 0 || cursor < 0 || maxVisible <= 0 {
		m.offset = 0
		return
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if cursor < m.offset {
		m.offset = cursor
	}
	if upper := m.offset + maxVisible - 1; cursor > upper {
		m.offset = cursor - maxVisible + 1
	}
}
