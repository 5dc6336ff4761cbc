//go:build unix

package hotkey

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
)

// SignalSource fires on SIGUSR1 and advertises the process id in a pid file so
// `kaomoji-picker activate` can find it.
type SignalSource struct {
	pidPath string
	signals chan os.Signal
	events  chan Event
	done    chan struct{}
	once    sync.Once
}

// NewSignalSource installs the SIGUSR1 handler and writes the pid file.
func NewSignalSource(dir string) (*SignalSource, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}
	pidPath := PIDPath(dir)
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write pid file: %w", err)
	}
	s := &SignalSource{
		pidPath: pidPath,
		signals: make(chan os.Signal, 1),
		events:  make(chan Event, 4),
		done:    make(chan struct{}),
	}
	signal.Notify(s.signals, syscall.SIGUSR1)
	go s.run()
	return s, nil
}

func (s *SignalSource) Name() string { return string(ModeSignal) }

func (s *SignalSource) Events() <-chan Event { return s.events }

// Stop removes the handler and the pid file and closes the event channel.
func (s *SignalSource) Stop() {
	s.once.Do(func() {
		signal.Stop(s.signals)
		close(s.done)
		_ = os.Remove(s.pidPath)
	})
}

func (s *SignalSource) run() {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		case <-s.signals:
			select {
			case s.events <- Event{Source: s.Name()}:
			case <-s.done:
				return
			}
		}
	}
}

func signalInstance(dir string) error {
	data, err := os.ReadFile(PIDPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: no pid file in %s", ErrNoInstance, dir)
		}
		return err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return fmt.Errorf("invalid pid file %s", PIDPath(dir))
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoInstance, err)
	}
	if err := proc.Signal(syscall.SIGUSR1); err != nil {
		return fmt.Errorf("%w: pid %d: %v", ErrNoInstance, pid, err)
	}
	return nil
}
