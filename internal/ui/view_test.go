package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/kaomoji-picker/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "kaomoji-picker-ui")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if err == nil {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

func TestShownViewIsCentred(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 80, Height: 12}, "a:1", "b:2")
	activate(h)
	rows := strings.Split(h.View(), "\n")
	// Three panel lines in twelve rows leave four blank rows above.
	if len(rows) != 4+3 {
		t.Fatalf("expected 7 rows, got %d:\n%s", len(rows), h.View())
	}
	for i := 0; i < 4; i++ {
		if strings.TrimSpace(rows[i]) != "" {
			t.Fatalf("expected blank padding row %d, got %q", i, rows[i])
		}
	}
	promptRow := rows[4]
	if !strings.HasPrefix(strings.TrimLeft(promptRow, " "), strings.TrimSpace(queryPrompt)) {
		t.Fatalf("expected prompt on first panel row, got %q", promptRow)
	}
	lead := len(promptRow) - len(strings.TrimLeft(promptRow, " "))
	if lead == 0 {
		t.Fatalf("expected panel to be indented for centring, got %q", promptRow)
	}
	if w := lipgloss.Width(promptRow); w != 80 {
		t.Fatalf("expected rows placed across the full width, got %d", w)
	}
}

func TestWideRowsAreTruncatedToPanel(t *testing.T) {
	long := "table:" + strings.Repeat("┻━┻ ", 30)
	h, _ := newTestHarness(t, Options{Width: 20}, long)
	activate(h)
	for _, row := range strings.Split(h.View(), "\n") {
		if w := lipgloss.Width(row); w > 20 {
			t.Fatalf("expected rows at most 20 cells, got %d: %q", w, row)
		}
	}
	if !strings.Contains(h.View(), "…") {
		t.Fatalf("expected truncation marker, got:\n%s", h.View())
	}
}

func TestTruncateTextCountsCells(t *testing.T) {
	if got := truncateText("ツツツ", 4); lipgloss.Width(got) > 4 {
		t.Fatalf("expected at most 4 cells, got %q", got)
	}
	if got := truncateText("abc", 5); got != "abc" {
		t.Fatalf("expected short text unchanged, got %q", got)
	}
	if got := truncateText("abc", 0); got != "abc" {
		t.Fatalf("expected zero width to disable truncation, got %q", got)
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "e0" + string(rune('0'+i)) + ":x"
	}
	h, _ := newTestHarness(t, Options{Height: 5}, lines...)
	activate(h)
	view := h.View()
	if !strings.Contains(view, "e00") || strings.Contains(view, "e05") {
		t.Fatalf("expected only the first page visible, got:\n%s", view)
	}
	h.Press(tea.KeyEnd)
	view = h.View()
	if !strings.Contains(view, "e09") || strings.Contains(view, "e00") {
		t.Fatalf("expected the last page visible, got:\n%s", view)
	}
	h.Press(tea.KeyPgUp)
	if got := h.Model().Controller().Cursor(); got != 5 {
		t.Fatalf("expected page up by 4 rows to land on 5, got %d", got)
	}
	h.Press(tea.KeyPgDown)
	if got := h.Model().Controller().Cursor(); got != 9 {
		t.Fatalf("expected page down to land on 9, got %d", got)
	}
}

func TestFooterShowsKeyHints(t *testing.T) {
	h, _ := newTestHarness(t, Options{ShowFooter: true}, "a:1")
	activate(h)
	view := h.View()
	for _, want := range []string{"enter", "copy", "esc", "hide"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in footer, got:\n%s", want, view)
		}
	}
	h2, _ := newTestHarness(t, Options{}, "a:1")
	activate(h2)
	if strings.Contains(h2.View(), "copy") {
		t.Fatalf("expected no footer when disabled, got:\n%s", h2.View())
	}
}

func TestEmptyCatalogMessage(t *testing.T) {
	h, _ := newTestHarness(t, Options{})
	activate(h)
	if view := h.View(); !strings.Contains(view, "(catalog is empty)") {
		t.Fatalf("expected empty catalog message, got:\n%s", view)
	}
	h.Press(tea.KeyEnter)
	if !h.Model().Controller().Visible() {
		t.Fatalf("expected commit on empty catalog to be a no-op")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 30}, "a:1")
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 40})
	if h.Model().width != 30 {
		t.Fatalf("expected fixed width to win, got %d", h.Model().width)
	}
	if h.Model().height != 40 {
		t.Fatalf("expected height from terminal, got %d", h.Model().height)
	}
}
