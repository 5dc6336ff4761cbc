package picker

import (
	"fmt"

	"github.com/atomicstack/kaomoji-picker/internal/catalog"
)

// Visibility is the picker's window state.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Shown:
		return "shown"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

// Event is an input delivered to the controller by the presentation layer or
// the hotkey source.
type Event interface {
	event()
}

// Activate is fired by the global hotkey.
type Activate struct{}

// QueryChanged carries the full text of the query field after an edit.
type QueryChanged struct {
	Text string
}

// Navigate moves the cursor by Delta rows.
type Navigate struct {
	Delta int
}

// Commit selects the current match.
type Commit struct{}

// Dismiss hides the picker without copying anything.
type Dismiss struct{}

// DoubleActivate selects the view row at Index and commits it.
type DoubleActivate struct {
	Index int
}

func (Activate) event()       {}
func (QueryChanged) event()   {}
func (Navigate) event()       {}
func (Commit) event()         {}
func (Dismiss) event()        {}
func (DoubleActivate) event() {}

// EffectKind enumerates the side effects a transition asks for.
type EffectKind int

const (
	// EffectSetQuery replaces the query field text with Effect.Text.
	EffectSetQuery EffectKind = iota
	// EffectRender redraws the list from the controller state.
	EffectRender
	EffectShow
	EffectFocusQuery
	EffectCenter
	// EffectCopy hands Effect.Text to the clipboard.
	EffectCopy
	EffectHide
)

func (k EffectKind) String() string {
	switch k {
	case EffectSetQuery:
		return "set-query"
	case EffectRender:
		return "render"
	case EffectShow:
		return "show"
	case EffectFocusQuery:
		return "focus-query"
	case EffectCenter:
		return "center"
	case EffectCopy:
		return "copy"
	case EffectHide:
		return "hide"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is one ordered side effect produced by Handle.
type Effect struct {
	Kind EffectKind
	Text string
}

// State is the picker's mutable state.
type State struct {
	Visibility Visibility
	Query      string
	View       View
	Cursor     int
}

// Controller owns the picker state and applies events to it. It is not safe
// for concurrent use; callers serialise events onto one goroutine.
type Controller struct {
	catalog *catalog.Catalog
	state   State
}

// NewController returns a hidden controller over c.
func NewController(c *catalog.Catalog) *Controller {
	ctl := &Controller{catalog: c}
	ctl.state = State{
		Visibility: Hidden,
		View:       Filter(c, ""),
	}
	ctl.state.Cursor = ResetCursor(ctl.state.View)
	return ctl
}

// Catalog returns the catalog the controller filters.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	s := c.state
	s.View = append(View(nil), c.state.View...)
	return s
}

// Visible reports whether the picker is shown.
func (c *Controller) Visible() bool {
	return c.state.Visibility == Shown
}

// Query returns the current query text.
func (c *Controller) Query() string {
	return c.state.Query
}

// View returns the current filtered view. Callers must not modify it.
func (c *Controller) View() View {
	return c.state.View
}

// Cursor returns the current cursor, or NoSelection.
func (c *Controller) Cursor() int {
	return c.state.Cursor
}

// Current returns the entry under the cursor.
func (c *Controller) Current() (catalog.Entry, bool) {
	return Current(c.catalog, c.state.Cursor, c.state.View)
}

// Handle applies ev and returns the side effects to perform, in order. Events
// other than Activate are ignored while hidden.
func (c *Controller) Handle(ev Event) []Effect {
	if _, ok := ev.(Activate); ok {
		return c.activate()
	}
	if c.state.Visibility != Shown {
		return nil
	}
	switch e := ev.(type) {
	case QueryChanged:
		return c.setQuery(e.Text)
	case Navigate:
		return c.navigate(e.Delta)
	case Commit:
		return c.commit()
	case DoubleActivate:
		if e.Index < 0 || e.Index >= len(c.state.View) {
			return nil
		}
		c.state.Cursor = e.Index
		return c.commit()
	case Dismiss:
		c.state.Visibility = Hidden
		return []Effect{{Kind: EffectHide}}
	}
	return nil
}

func (c *Controller) activate() []Effect {
	c.state.Query = ""
	c.refilter()
	c.state.Visibility = Shown
	return []Effect{
		{Kind: EffectSetQuery, Text: ""},
		{Kind: EffectRender},
		{Kind: EffectShow},
		{Kind: EffectFocusQuery},
		{Kind: EffectCenter},
	}
}

func (c *Controller) setQuery(text string) []Effect {
	if text == c.state.Query {
		return nil
	}
	c.state.Query = text
	c.refilter()
	return []Effect{{Kind: EffectRender}}
}

func (c *Controller) navigate(delta int) []Effect {
	next := Move(c.state.Cursor, c.state.View, delta)
	if next == c.state.Cursor {
		return nil
	}
	c.state.Cursor = next
	return []Effect{{Kind: EffectRender}}
}

func (c *Controller) commit() []Effect {
	entry, ok := c.Current()
	if !ok {
		return nil
	}
	c.state.Visibility = Hidden
	return []Effect{
		{Kind: EffectCopy, Text: entry.Payload()},
		{Kind: EffectHide},
	}
}

func (c *Controller) refilter() {
	c.state.View = Filter(c.catalog, c.state.Query)
	c.state.Cursor = ResetCursor(c.state.View)
}
