// Package picker holds the filter-and-select engine behind the kaomoji
// picker.
//
// Filter narrows the catalog to the entries containing the query, Move and
// Current manage the cursor over that view, and Controller sequences the
// hidden/shown lifecycle. Controller.Handle maps an event to a new state plus
// an ordered list of effects; it performs no I/O, so the presentation layer
// decides how to show, hide, focus, and copy.
package picker
