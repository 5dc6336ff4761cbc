package hotkey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultCoalesce = 150 * time.Millisecond

// TriggerSource fires whenever the trigger file in its directory is created
// or written.
type TriggerSource struct {
	dir      string
	path     string
	watcher  *fsnotify.Watcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewTriggerSource watches dir for writes to the trigger file. Bursts of
// filesystem events within coalesce collapse into one activation.
func NewTriggerSource(dir string, coalesce time.Duration) (*TriggerSource, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &TriggerSource{
		dir:      dir,
		path:     TriggerPath(dir),
		watcher:  watcher,
		throttle: newThrottle(coalesce),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	s.wg.Add(1)
	go s.run()
	go func() {
		s.wg.Wait()
		close(s.events)
	}()
	return s, nil
}

func (s *TriggerSource) Name() string { return string(ModeFile) }

// Events returns the activation channel. It closes after Stop.
func (s *TriggerSource) Events() <-chan Event { return s.events }

// Path returns the watched trigger file.
func (s *TriggerSource) Path() string { return s.path }

// Stop ends the watch and closes the event channel.
func (s *TriggerSource) Stop() {
	s.cancel()
	s.watcher.Close()
}

// Wait blocks until the watch goroutine exits.
func (s *TriggerSource) Wait() {
	s.wg.Wait()
}

func (s *TriggerSource) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !s.throttle.allow() {
				continue
			}
			if !s.emit(Event{Source: s.Name()}) {
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if !s.emit(Event{Source: s.Name(), Err: err}) {
				return
			}
		}
	}
}

func (s *TriggerSource) emit(evt Event) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.events <- evt:
		return true
	}
}

func touchTrigger(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrNoInstance, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return os.WriteFile(TriggerPath(dir), []byte(stamp+"\n"), 0o600)
}
