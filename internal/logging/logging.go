package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogFile = "kaomoji-picker.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
)

func init() {
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
}

// withLogger opens the shared log file for a single write. The file is
// reopened per entry so the log path can change at runtime.
func withLogger(fn func(zerolog.Logger)) error {
	traceMu.Lock()
	path := logPath
	traceMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	fn(zerolog.New(f).With().Timestamp().Logger())
	return nil
}

// Error writes errors to the shared log file regardless of trace settings.
func Error(err error) {
	if err == nil {
		return
	}
	if ferr := withLogger(func(l zerolog.Logger) {
		l.Error().Err(err).Send()
	}); ferr != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", ferr)
	}
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether Trace writes entries.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	if err := withLogger(func(l zerolog.Logger) {
		entry := l.WithLevel(zerolog.TraceLevel).Str("event", event)
		if payload != nil {
			entry = entry.Interface("payload", payload)
		}
		entry.Send()
	}); err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the active log destination.
func Path() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}
