package picker

import (
	"strings"

	"github.com/atomicstack/kaomoji-picker/internal/catalog"
)

// View is an ordered list of catalog indices. It is always a subsequence of
// the catalog in catalog order.
type View []int

// Len returns the number of visible entries.
func (v View) Len() int {
	return len(v)
}

// Entries resolves the view against its catalog.
func (v View) Entries(c *catalog.Catalog) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(v))
	for _, idx := range v {
		if e, ok := c.At(idx); ok {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns the entries whose raw line contains query. The match is a
// case-sensitive substring test; an empty query matches everything. Each call
// builds a fresh view.
func Filter(c *catalog.Catalog, query string) View {
	n := c.Len()
	view := make(View, 0, n)
	for i := 0; i < n; i++ {
		e, _ := c.At(i)
		if query == "" || strings.Contains(e.Line(), query) {
			view = append(view, i)
		}
	}
	return view
}
