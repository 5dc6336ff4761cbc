package picker

import (
	"testing"

	"github.com/atomicstack/kaomoji-picker/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, 0, len(effects))
	for _, e := range effects {
		out = append(out, e.Kind)
	}
	return out
}

func shownController(t *testing.T, lines ...string) *Controller {
	t.Helper()
	ctl := NewController(catalog.New(lines...))
	ctl.Handle(Activate{})
	require.True(t, ctl.Visible())
	return ctl
}

func TestControllerStartsHidden(t *testing.T) {
	ctl := NewController(catalog.New("a:1"))
	assert.Equal(t, Hidden, ctl.State().Visibility)
	assert.False(t, ctl.Visible())
}

func TestActivateResetsStateAndOrdersEffects(t *testing.T) {
	ctl := NewController(catalog.New("a:1", "b:2", "ab:3"))
	effects := ctl.Handle(Activate{})

	assert.Equal(t, []EffectKind{EffectSetQuery, EffectRender, EffectShow, EffectFocusQuery, EffectCenter}, kinds(effects))
	assert.Equal(t, "", effects[0].Text)
	s := ctl.State()
	assert.Equal(t, Shown, s.Visibility)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, View{0, 1, 2}, s.View)
	assert.Equal(t, 0, s.Cursor)
}

func TestActivateTwiceMatchesActivateOnce(t *testing.T) {
	once := NewController(catalog.New("a:1", "b:2", "ab:3"))
	once.Handle(Activate{})

	twice := NewController(catalog.New("a:1", "b:2", "ab:3"))
	twice.Handle(Activate{})
	twice.Handle(QueryChanged{Text: "ab"})
	twice.Handle(Activate{})
	second := twice.Handle(Activate{})

	assert.Equal(t, once.State(), twice.State())
	assert.Contains(t, kinds(second), EffectCenter)
	assert.Contains(t, kinds(second), EffectFocusQuery)
	assert.NotContains(t, kinds(second), EffectHide)
}

func TestQueryChangeResetsCursor(t *testing.T) {
	ctl := shownController(t, "a:1", "b:2", "ab:3", "ba:4")
	ctl.Handle(Navigate{Delta: 3})
	require.Equal(t, 3, ctl.Cursor())

	effects := ctl.Handle(QueryChanged{Text: "a"})
	assert.Equal(t, []EffectKind{EffectRender}, kinds(effects))
	assert.Equal(t, 0, ctl.Cursor())
	assert.Equal(t, View{0, 2, 3}, ctl.View())

	ctl.Handle(Navigate{Delta: 2})
	ctl.Handle(QueryChanged{Text: "zz"})
	assert.Equal(t, NoSelection, ctl.Cursor())
	assert.Empty(t, ctl.View())

	ctl.Handle(QueryChanged{Text: ""})
	assert.Equal(t, 0, ctl.Cursor())
	assert.Len(t, ctl.View(), 4)
}

func TestNavigateClampsWithoutWrapping(t *testing.T) {
	ctl := shownController(t, "x:10", "y:20")
	assert.Nil(t, ctl.Handle(Navigate{Delta: -1}))
	assert.Equal(t, 0, ctl.Cursor())

	assert.Equal(t, []EffectKind{EffectRender}, kinds(ctl.Handle(Navigate{Delta: 1})))
	assert.Equal(t, 1, ctl.Cursor())
	assert.Nil(t, ctl.Handle(Navigate{Delta: 1}))
	assert.Equal(t, 1, ctl.Cursor())
}

func TestCommitCopiesPayloadAndHides(t *testing.T) {
	ctl := shownController(t, "lol:¯\\_(ツ)_/¯", "(╯°□°)╯︵ ┻━┻")
	effects := ctl.Handle(Commit{})
	require.Equal(t, []EffectKind{EffectCopy, EffectHide}, kinds(effects))
	assert.Equal(t, "¯\\_(ツ)_/¯", effects[0].Text)
	assert.False(t, ctl.Visible())

	ctl.Handle(Activate{})
	ctl.Handle(Navigate{Delta: 1})
	effects = ctl.Handle(Commit{})
	require.Len(t, effects, 2)
	assert.Equal(t, "(╯°□°)╯︵ ┻━┻", effects[0].Text)
}

func TestCommitWithoutMatchIsNoOp(t *testing.T) {
	ctl := shownController(t, "a:1", "b:2")
	ctl.Handle(QueryChanged{Text: "z"})
	assert.Nil(t, ctl.Handle(Commit{}))
	assert.True(t, ctl.Visible())
}

func TestDismissHidesWithoutCopy(t *testing.T) {
	ctl := shownController(t, "a:1")
	effects := ctl.Handle(Dismiss{})
	assert.Equal(t, []EffectKind{EffectHide}, kinds(effects))
	assert.False(t, ctl.Visible())
}

func TestDoubleActivateCommitsRow(t *testing.T) {
	ctl := shownController(t, "a:1", "b:2", "ab:3")
	ctl.Handle(QueryChanged{Text: "a"})
	effects := ctl.Handle(DoubleActivate{Index: 1})
	require.Equal(t, []EffectKind{EffectCopy, EffectHide}, kinds(effects))
	assert.Equal(t, "3", effects[0].Text)

	ctl.Handle(Activate{})
	assert.Nil(t, ctl.Handle(DoubleActivate{Index: 5}))
	assert.Nil(t, ctl.Handle(DoubleActivate{Index: -1}))
	assert.True(t, ctl.Visible())
}

func TestEventsIgnoredWhileHidden(t *testing.T) {
	ctl := NewController(catalog.New("a:1", "b:2"))
	for _, ev := range []Event{QueryChanged{Text: "b"}, Navigate{Delta: 1}, Commit{}, Dismiss{}, DoubleActivate{Index: 0}} {
		assert.Nil(t, ctl.Handle(ev), "%T should be ignored while hidden", ev)
	}
	assert.Equal(t, "", ctl.Query())
	assert.Equal(t, 0, ctl.Cursor())
	assert.False(t, ctl.Visible())
}

func TestControllerReusableAcrossActivations(t *testing.T) {
	ctl := NewController(catalog.New("a:1", "b:2"))
	for i := 0; i < 3; i++ {
		ctl.Handle(Activate{})
		ctl.Handle(QueryChanged{Text: "b"})
		effects := ctl.Handle(Commit{})
		require.Len(t, effects, 2)
		assert.Equal(t, "2", effects[0].Text)
		assert.False(t, ctl.Visible())
	}
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	ctl := shownController(t, "a", "b")
	s := ctl.State()
	s.View[0] = 42
	assert.Equal(t, View{0, 1}, ctl.View())
}

func TestEmptyCatalogCommitIsNoOp(t *testing.T) {
	ctl := shownController(t)
	assert.Equal(t, NoSelection, ctl.Cursor())
	assert.Nil(t, ctl.Handle(Commit{}))
	assert.Nil(t, ctl.Handle(Navigate{Delta: 1}))
}
