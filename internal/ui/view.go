package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/kaomoji-picker/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	maxPanelWidth = 56
	itemIndicator = "▌"

	// listFirstRow is the row of the first list entry inside the panel; the
	// query field sits above it.
	listFirstRow = 1
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.controller.Visible() {
		return m.viewHidden()
	}
	lines := m.shownLines()
	block := padBlock(renderLines(lines))
	if m.width > 0 {
		block = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
	}
	if top := m.topPadding(len(lines)); top > 0 {
		block = strings.Repeat("\n", top) + block
	}
	return block
}

// padBlock right-pads every row to the widest one so the panel is centred as
// a unit rather than row by row.
func padBlock(block string) string {
	rows := strings.Split(block, "\n")
	widest := 0
	for _, row := range rows {
		if w := lipgloss.Width(row); w > widest {
			widest = w
		}
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w < widest {
			rows[i] = row + strings.Repeat(" ", widest-w)
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) viewHidden() string {
	lines := []styledLine{{text: m.hint, style: styles.Hint}}
	switch {
	case m.errMsg != "":
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	case m.statusMsg != "":
		lines = append(lines, styledLine{text: m.statusMsg, style: styles.Status})
	}
	return renderLines(applyWidth(lines, m.width))
}

// shownLines lays out the picker panel: query field, visible rows, footer.
func (m *Model) shownLines() []styledLine {
	width := m.panelWidth()
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.query.View(), raw: true})

	view := m.controller.View()
	if len(view) == 0 {
		msg := "(catalog is empty)"
		if q := m.controller.Query(); q != "" {
			msg = fmt.Sprintf("No matches for %q", q)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		cat := m.controller.Catalog()
		cursor := m.controller.Cursor()
		start, end := m.visibleRange()
		for idx := start; idx < end; idx++ {
			entry, _ := cat.At(view[idx])
			lines = append(lines, buildItemLine(entry, idx == cursor, width))
		}
	}
	if m.showFooter {
		m.help.Width = width
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = limitHeight(lines, m.height, width)
	return applyWidth(lines, width)
}

func (m *Model) visibleRange() (int, int) {
	total := len(m.controller.View())
	start := m.offset
	if start < 0 || start >= total {
		start = 0
	}
	end := total
	if maxItems := m.maxVisibleItems(); maxItems > 0 && start+maxItems < end {
		end = start + maxItems
	}
	return start, end
}

func (m *Model) renderedRows() int {
	start, end := m.visibleRange()
	return end - start
}

// buildItemLine renders one catalog line. When width > 0 the row is padded so
// the selected row's background spans the panel.
func buildItemLine(entry catalog.Entry, selected bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := itemIndicator + " " + entry.Line()
	if width > 0 {
		if pad := width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) panelWidth() int {
	if m.width <= 0 {
		return 0
	}
	if m.width > maxPanelWidth {
		return maxPanelWidth
	}
	return m.width
}

func (m *Model) topPadding(blockHeight int) int {
	if m.height <= blockHeight {
		return 0
	}
	return (m.height - blockHeight) / 2
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := listFirstRow
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width terminal cells. Kaomoji mix narrow and
// wide runes, so the measure is cells, not runes.
func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
