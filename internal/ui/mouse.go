package ui

import (
	"time"

	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	"github.com/atomicstack/kaomoji-picker/internal/picker"
	tea "github.com/charmbracelet/bubbletea"
)

const doubleClickInterval = 500 * time.Millisecond

// click remembers the catalog entry under the last press. A filter change
// moves entries between rows, so the entry is compared rather than the row.
type click struct {
	entry int
	at    time.Time
}

func (m *Model) resetClick() {
	m.lastClick = click{entry: picker.NoSelection}
}

// handleMouseMsg maps clicks on list rows to cursor moves, and a second click
// on the same entry within doubleClickInterval to a double-activate.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.controller.Visible() {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		if ev.Action == tea.MouseActionPress {
			return m.navigate(-1)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if ev.Action == tea.MouseActionPress {
			return m.navigate(1)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	idx, ok := m.rowAt(ev.Y)
	if !ok {
		m.resetClick()
		return nil
	}
	target := m.controller.View()[idx]
	now := m.now()
	prev := m.lastClick
	if prev.entry == target && now.Sub(prev.at) <= doubleClickInterval {
		m.resetClick()
		entry, _ := picker.Current(m.controller.Catalog(), idx, m.controller.View())
		events.Picker.Commit(entry.Line(), m.controller.Query(), idx)
		return m.dispatch(picker.DoubleActivate{Index: idx})
	}
	m.lastClick = click{entry: target, at: now}
	return m.navigate(idx - m.controller.Cursor())
}

// rowAt translates a screen row into a view index.
func (m *Model) rowAt(y int) (int, bool) {
	lines := m.shownLines()
	row := y - m.topPadding(len(lines)) - listFirstRow
	if row < 0 || row >= m.renderedRows() {
		return picker.NoSelection, false
	}
	return m.offset + row, true
}
