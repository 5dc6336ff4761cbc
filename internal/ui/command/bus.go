// Package command runs picker side effects that touch the outside world
// (clipboard writes, tmux focus changes) as Bubble Tea commands.
package command

import (
	"github.com/atomicstack/kaomoji-picker/internal/logging"
	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	IDCopy      = "clipboard:copy"
	IDFocusShow = "focus:show"
	IDFocusHide = "focus:hide"
)

// Request encapsulates one side effect.
type Request struct {
	ID    string
	Label string
	Run   func() error
}

// Result is delivered back to the model once a request finishes.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus coordinates the execution of side effects.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
// Failures are logged here; the model decides whether to surface them.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		err := req.Run()
		if err != nil {
			logging.Error(err)
		}
		res := Result{ID: req.ID, Label: req.Label, Err: err}
		events.Command.Result(req.ID, req.Label, resultKind(err))
		return res
	}
}

func resultKind(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
