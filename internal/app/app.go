package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/kaomoji-picker/internal/catalog"
	"github.com/atomicstack/kaomoji-picker/internal/clipboard"
	"github.com/atomicstack/kaomoji-picker/internal/hotkey"
	"github.com/atomicstack/kaomoji-picker/internal/logging"
	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
	"github.com/atomicstack/kaomoji-picker/internal/tmux"
	"github.com/atomicstack/kaomoji-picker/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	CatalogPath string
	HotkeyMode  hotkey.Mode
	RuntimeDir  string
	TmuxKey     string
	TmuxFocus   bool
	SocketPath  string
	Width       int
	Height      int
	ShowFooter  bool
	ShowOnStart bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	cat, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	events.App.CatalogLoaded(cat.Path(), cat.Len())

	source, err := hotkey.New(cfg.HotkeyMode, cfg.RuntimeDir)
	if err != nil {
		return fmt.Errorf("start hotkey source: %w", err)
	}
	defer source.Stop()

	opts := ui.Options{
		Catalog:     cat,
		Hotkey:      source,
		Clipboard:   clipboard.NewSystem(),
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		ShowOnStart: cfg.ShowOnStart,
		Hint:        idleHint(cfg),
	}
	if focus := setupTmux(cfg); focus != nil {
		opts.Focus = focus
	}

	program := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// LoadCatalog reads the catalog from path, or from the default lookup paths
// when path is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) != "" {
		return catalog.LoadFirst(path)
	}
	return catalog.LoadFirst(catalog.DefaultPaths()...)
}

// ActivateArgs are the arguments the activate subcommand needs to reach an
// instance started with cfg.
func ActivateArgs(cfg Config) []string {
	return []string{"--hotkey-source", string(cfg.HotkeyMode), "--runtime-dir", cfg.RuntimeDir}
}

// setupTmux installs the key binding and returns the focus switcher when
// enabled. tmux failures are logged and never stop the picker.
func setupTmux(cfg Config) ui.Focuser {
	if strings.TrimSpace(cfg.TmuxKey) == "" && !cfg.TmuxFocus {
		return nil
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		logging.Error(fmt.Errorf("resolve socket path: %w", err))
		return nil
	}
	client := tmux.New(socketPath)
	if key := strings.TrimSpace(cfg.TmuxKey); key != "" {
		exe, err := os.Executable()
		if err != nil {
			logging.Error(fmt.Errorf("resolve executable: %w", err))
		} else if err := client.BindHotkey(key, tmux.ActivateCommand(exe, ActivateArgs(cfg)...)); err != nil {
			logging.Error(fmt.Errorf("bind tmux key %s: %w", key, err))
		}
	}
	if !cfg.TmuxFocus {
		return nil
	}
	pane := tmux.CurrentPane()
	if pane == "" {
		logging.Error(errors.New("tmux focus requested but TMUX_PANE is not set"))
		return nil
	}
	return tmux.NewFocus(client, pane)
}

func idleHint(cfg Config) string {
	if key := strings.TrimSpace(cfg.TmuxKey); key != "" {
		return fmt.Sprintf("kaomoji picker is idle; press %s in tmux to open it (ctrl+c quits)", key)
	}
	return ""
}
