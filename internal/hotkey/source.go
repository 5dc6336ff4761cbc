// Package hotkey delivers the global "activate" signal to a running picker.
// The key combination itself lives outside the process (a desktop shortcut or
// a tmux key binding runs `kaomoji-picker activate`); this package carries that
// request across the process boundary and publishes it on a channel.
package hotkey

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects how activation requests reach the running instance.
type Mode string

const (
	ModeFile   Mode = "file"
	ModeSignal Mode = "signal"
)

const (
	triggerFileName = "activate"
	pidFileName     = "pid"
)

// ErrNoInstance reports that no running picker could be reached.
var ErrNoInstance = errors.New("no running picker instance")

// Event conveys one activation request or a source failure.
type Event struct {
	Source string
	Err    error
}

// Source publishes activation events until stopped.
type Source interface {
	Name() string
	Events() <-chan Event
	Stop()
}

// ParseMode validates a configured mode name.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeFile:
		return ModeFile, nil
	case ModeSignal:
		return ModeSignal, nil
	}
	return "", fmt.Errorf("unknown hotkey source %q (want %q or %q)", value, ModeFile, ModeSignal)
}

// DefaultRuntimeDir returns the directory holding the trigger and pid files.
func DefaultRuntimeDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); dir != "" {
		return filepath.Join(dir, "kaomoji-picker")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("kaomoji-picker-%d", os.Getuid()))
}

// TriggerPath returns the trigger file watched in file mode.
func TriggerPath(dir string) string {
	return filepath.Join(dir, triggerFileName)
}

// PIDPath returns the pid file written in signal mode.
func PIDPath(dir string) string {
	return filepath.Join(dir, pidFileName)
}

// New starts the source for mode rooted at dir.
func New(mode Mode, dir string) (Source, error) {
	switch mode {
	case ModeSignal:
		s, err := NewSignalSource(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ModeFile, "":
		s, err := NewTriggerSource(dir, defaultCoalesce)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown hotkey source %q", mode)
}

// Activate asks the running instance to show the picker.
func Activate(mode Mode, dir string) error {
	switch mode {
	case ModeSignal:
		return signalInstance(dir)
	case ModeFile, "":
		return touchTrigger(dir)
	}
	return fmt.Errorf("unknown hotkey source %q", mode)
}

// Channel is an in-process Source fed by Fire, used where no external hotkey
// exists, such as tests.
type Channel struct {
	events chan Event
	closed bool
}

// NewChannel returns a buffered in-process source.
func NewChannel() *Channel {
	return &Channel{events: make(chan Event, 4)}
}

func (c *Channel) Name() string { return "channel" }

func (c *Channel) Events() <-chan Event { return c.events }

// Fire publishes one activation without blocking; extra activations are
// dropped while the buffer is full since they carry no data.
func (c *Channel) Fire() {
	if c.closed {
		return
	}
	select {
	case c.events <- Event{Source: c.Name()}:
	default:
	}
}

// Stop closes the event channel.
func (c *Channel) Stop() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}
