package picker

import "github.com/atomicstack/kaomoji-picker/internal/catalog"

// NoSelection is the cursor value used while the view is empty.
const NoSelection = -1

// ResetCursor returns the cursor for a freshly filtered view: the first match,
// or NoSelection when nothing matched.
func ResetCursor(view View) int {
	if len(view) == 0 {
		return NoSelection
	}
	return 0
}

// Move shifts the cursor by delta and clamps it to the view. It never wraps.
func Move(cursor int, view View, delta int) int {
	n := len(view)
	if n == 0 {
		return NoSelection
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n-1 {
		cursor = n - 1
	}
	switch {
	case delta > 0 && delta > n-1-cursor:
		return n - 1
	case delta < -cursor:
		return 0
	}
	return cursor + delta
}

// Current returns the entry under the cursor. The boolean is false when the
// view is empty or the cursor is out of range.
func Current(c *catalog.Catalog, cursor int, view View) (catalog.Entry, bool) {
	if cursor < 0 || cursor >= len(view) {
		return catalog.Entry{}, false
	}
	return c.At(view[cursor])
}
