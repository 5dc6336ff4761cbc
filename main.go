package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/kaomoji-picker/internal/app"
	"github.com/atomicstack/kaomoji-picker/internal/config"
	"github.com/atomicstack/kaomoji-picker/internal/hotkey"
	"github.com/atomicstack/kaomoji-picker/internal/logging"
	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	exitRuntime = 1
	exitConfig  = 2
)

// configError marks failures that happen before the picker starts.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }

func (e configError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	root := newRootCmd(args, environ)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		var cfgErr configError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(stderr, "Configuration error: %v\n", cfgErr.err)
			return exitConfig
		}
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRuntime
	}
	return 0
}

func newRootCmd(args, environ []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "kaomoji-picker",
		Short:         "Pick a kaomoji from a hotkey-activated list and copy it to the clipboard",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, args, environ)
			if err != nil {
				return err
			}
			traceStartup(cfg)
			err = app.Run(cfg.App)
			events.App.Exit(err)
			return err
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err: err}
	})
	config.Register(root.PersistentFlags())
	root.AddCommand(newActivateCmd(args, environ))
	return root
}

func newActivateCmd(args, environ []string) *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Show the running picker (bind this to a global hotkey)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, args, environ)
			if err != nil {
				return err
			}
			if err := hotkey.Activate(cfg.App.HotkeyMode, cfg.App.RuntimeDir); err != nil {
				return fmt.Errorf("activate via %s in %s: %w", cfg.App.HotkeyMode, cfg.App.RuntimeDir, err)
			}
			return nil
		},
	}
}

// loadConfig resolves the command's flags against the environment and config
// file, validates the result and applies the logging settings.
func loadConfig(cmd *cobra.Command, args, environ []string) (config.Config, error) {
	cfg, err := config.Resolve(cmd.Flags(), environ, args)
	if err != nil {
		return config.Config{}, configError{err: err}
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, configError{err: err}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	return cfg, nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
