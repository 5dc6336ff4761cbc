// Package clipboard hands committed payloads to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable wraps failures from the platform clipboard.
var ErrUnavailable = errors.New("clipboard unavailable")

// Sink receives one payload per commit.
type Sink interface {
	SetText(text string) error
}

// System writes to the platform clipboard.
type System struct{}

var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// NewSystem returns the platform clipboard sink.
func NewSystem() System {
	return System{}
}

// SetText replaces the clipboard contents with text.
func (System) SetText(text string) error {
	if unsupported() {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnavailable)
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Discard drops every payload. Used when the clipboard is disabled.
type Discard struct{}

// SetText implements Sink.
func (Discard) SetText(string) error {
	return nil
}

// Recorder keeps every payload it receives. Tests use it to observe commits.
type Recorder struct {
	Texts []string
	Err   error
}

// SetText implements Sink.
func (r *Recorder) SetText(text string) error {
	r.Texts = append(r.Texts, text)
	return r.Err
}

// Last returns the most recent payload.
func (r *Recorder) Last() (string, bool) {
	if len(r.Texts) == 0 {
		return "", false
	}
	return r.Texts[len(r.Texts)-1], true
}
