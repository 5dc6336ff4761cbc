package ui

import (
	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	"github.com/atomicstack/kaomoji-picker/internal/picker"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	queryPrompt      = "» "
	queryPlaceholder = "type to filter"
)

func newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = queryPrompt
	ti.Placeholder = queryPlaceholder
	if styles.QueryPrompt != nil {
		ti.PromptStyle = *styles.QueryPrompt
	}
	if styles.QueryText != nil {
		ti.TextStyle = *styles.QueryText
	}
	if styles.QueryPlaceholder != nil {
		ti.PlaceholderStyle = *styles.QueryPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	// The picker redraws on every hotkey; a blinking caret only adds ticks.
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// updateQuery forwards an editing key to the query field and reports a
// changed query to the controller.
func (m *Model) updateQuery(msg tea.KeyMsg) tea.Cmd {
	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	after := m.query.Value()
	if after == before {
		return cmd
	}
	effectsCmd := m.dispatch(picker.QueryChanged{Text: after})
	events.Filter.Changed(after, len(m.controller.View()))
	return batch(nonNil(cmd, effectsCmd))
}

func (m *Model) clearQuery() tea.Cmd {
	if m.query.Value() == "" {
		return nil
	}
	m.query.SetValue("")
	events.Filter.Cleared()
	return m.dispatch(picker.QueryChanged{Text: ""})
}

func nonNil(cmds ...tea.Cmd) []tea.Cmd {
	out := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			out = append(out, cmd)
		}
	}
	return out
}
