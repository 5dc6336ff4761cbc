//go:build !unix

package hotkey

import "errors"

// SignalSource is unavailable on this platform.
type SignalSource struct{}

var errSignalUnsupported = errors.New("signal hotkey source requires a unix platform")

// NewSignalSource always fails on this platform; use the file source.
func NewSignalSource(string) (*SignalSource, error) {
	return nil, errSignalUnsupported
}

func (*SignalSource) Name() string { return string(ModeSignal) }

func (*SignalSource) Events() <-chan Event { return nil }

func (*SignalSource) Stop() {}

func signalInstance(string) error {
	return errSignalUnsupported
}
