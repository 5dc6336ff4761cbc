package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/kaomoji-picker/internal/app"
	"github.com/atomicstack/kaomoji-picker/internal/hotkey"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// ConfigFile is the YAML file that was read, empty when none was found.
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File mirrors the optional YAML config file. Pointer fields distinguish
// unset keys from zero values.
type File struct {
	Catalog      *string `yaml:"catalog"`
	HotkeySource *string `yaml:"hotkey_source"`
	RuntimeDir   *string `yaml:"runtime_dir"`
	TmuxKey      *string `yaml:"tmux_key"`
	TmuxFocus    *bool   `yaml:"tmux_focus"`
	Socket       *string `yaml:"socket"`
	Width        *int    `yaml:"width"`
	Height       *int    `yaml:"height"`
	Footer       *bool   `yaml:"footer"`
	ShowOnStart  *bool   `yaml:"show_on_start"`
	Trace        *bool   `yaml:"trace"`
	LogFile      *string `yaml:"log_file"`
}

const (
	envCatalog      = "KAOMOJI_PICKER_CATALOG"
	envHotkeySource = "KAOMOJI_PICKER_HOTKEY_SOURCE"
	envRuntimeDir   = "KAOMOJI_PICKER_RUNTIME_DIR"
	envTmuxKey      = "KAOMOJI_PICKER_TMUX_KEY"
	envTmuxFocus    = "KAOMOJI_PICKER_TMUX_FOCUS"
	envSocketPath   = "KAOMOJI_PICKER_SOCKET"
	envWidth        = "KAOMOJI_PICKER_WIDTH"
	envHeight       = "KAOMOJI_PICKER_HEIGHT"
	envShowFooter   = "KAOMOJI_PICKER_FOOTER"
	envShowOnStart  = "KAOMOJI_PICKER_SHOW_ON_START"
	envTrace        = "KAOMOJI_PICKER_TRACE"
	envLogFile      = "KAOMOJI_PICKER_LOG_FILE"
	envConfig       = "KAOMOJI_PICKER_CONFIG"

	// DefaultConfigFile is looked up next to the executable when no config
	// path is given.
	DefaultConfigFile = "kaomoji-picker.yaml"
	defaultLogFile    = "kaomoji-picker.log"
)

// Register declares the picker flags on fs. Defaults are the built-in ones;
// environment and config file values are applied by Resolve for flags the
// user did not set.
func Register(fs *pflag.FlagSet) {
	fs.String("catalog", "", "path to the kaomoji catalog (default: emotes.txt next to the executable, then the working directory)")
	fs.String("hotkey-source", string(hotkey.ModeFile), "how the activate command reaches this instance: file or signal")
	fs.String("runtime-dir", "", "directory for the trigger file and pidfile")
	fs.String("tmux-key", "", "install a tmux root-table binding for this key that activates the picker")
	fs.Bool("tmux-focus", false, "switch the tmux client to the picker pane while it is shown")
	fs.String("socket", "", "path to the tmux socket (overrides environment detection)")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", true, "show the key hint footer")
	fs.Bool("show-on-start", false, "show the picker immediately after startup")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", defaultLogFile, "path to the log file")
	fs.String("config", "", "path to a YAML config file (default: kaomoji-picker.yaml next to the executable)")
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("kaomoji-picker", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	Register(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return Resolve(fs, environ, args)
}

// Resolve merges parsed flags with the environment and the config file.
// Precedence is flag, then environment, then file, then default.
func Resolve(fs *pflag.FlagSet, environ []string, args []string) (Config, error) {
	env := parseEnv(environ)
	r := resolver{fs: fs, env: env}

	configPath, explicit := r.configPath()
	file, err := readFile(configPath, explicit)
	if err != nil {
		return Config{}, err
	}
	if file != nil {
		r.file = *file
	} else {
		configPath = ""
	}

	catalogPath := r.str("catalog", envCatalog, r.file.Catalog)
	source := r.str("hotkey-source", envHotkeySource, r.file.HotkeySource)
	runtimeDir := r.str("runtime-dir", envRuntimeDir, r.file.RuntimeDir)
	tmuxKey := r.str("tmux-key", envTmuxKey, r.file.TmuxKey)
	tmuxFocus := r.bool("tmux-focus", envTmuxFocus, r.file.TmuxFocus)
	socket := r.str("socket", envSocketPath, r.file.Socket)
	width := r.int("width", envWidth, r.file.Width)
	height := r.int("height", envHeight, r.file.Height)
	footer := r.bool("footer", envShowFooter, r.file.Footer)
	showOnStart := r.bool("show-on-start", envShowOnStart, r.file.ShowOnStart)
	trace := r.bool("trace", envTrace, r.file.Trace)
	logFile := r.str("log-file", envLogFile, r.file.LogFile)

	if width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", width)
	}
	if height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", height)
	}
	mode, err := hotkey.ParseMode(source)
	if err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(runtimeDir) == "" {
		runtimeDir = hotkey.DefaultRuntimeDir()
	}

	cfg := Config{
		App: app.Config{
			CatalogPath: catalogPath,
			HotkeyMode:  mode,
			RuntimeDir:  runtimeDir,
			TmuxKey:     tmuxKey,
			TmuxFocus:   tmuxFocus,
			SocketPath:  socket,
			Width:       width,
			Height:      height,
			ShowFooter:  footer,
			ShowOnStart: showOnStart,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		ConfigFile: configPath,
		Flags: map[string]string{
			"catalog":       catalogPath,
			"hotkeySource":  string(mode),
			"runtimeDir":    runtimeDir,
			"tmuxKey":       tmuxKey,
			"tmuxFocus":     strconv.FormatBool(tmuxFocus),
			"socket":        socket,
			"width":         strconv.Itoa(width),
			"height":        strconv.Itoa(height),
			"footer":        strconv.FormatBool(footer),
			"showOnStart":   strconv.FormatBool(showOnStart),
			"trace":         strconv.FormatBool(trace),
			"logFile":       logFile,
			"config":        configPath,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

type resolver struct {
	fs   *pflag.FlagSet
	env  map[string]string
	file File
}

func (r resolver) configPath() (string, bool) {
	if r.fs.Changed("config") {
		v, _ := r.fs.GetString("config")
		return v, true
	}
	if v, ok := r.env[envConfig]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return defaultConfigPath(), false
}

func (r resolver) str(name, envKey string, fromFile *string) string {
	if r.fs.Changed(name) {
		v, _ := r.fs.GetString(name)
		return v
	}
	if v, ok := r.env[envKey]; ok {
		return v
	}
	if fromFile != nil {
		return *fromFile
	}
	v, _ := r.fs.GetString(name)
	return v
}

func (r resolver) int(name, envKey string, fromFile *int) int {
	if r.fs.Changed(name) {
		v, _ := r.fs.GetInt(name)
		return v
	}
	if v, ok := envInt(r.env, envKey); ok {
		return v
	}
	if fromFile != nil {
		return *fromFile
	}
	v, _ := r.fs.GetInt(name)
	return v
}

func (r resolver) bool(name, envKey string, fromFile *bool) bool {
	if r.fs.Changed(name) {
		v, _ := r.fs.GetBool(name)
		return v
	}
	if v, ok := envBool(r.env, envKey); ok {
		return v
	}
	if fromFile != nil {
		return *fromFile
	}
	v, _ := r.fs.GetBool(name)
	return v
}

func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultConfigFile)
}

// readFile loads the YAML file at path. A missing file is only an error when
// the path was given explicitly.
func readFile(path string, explicit bool) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envInt(env map[string]string, key string) (int, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envBool(env map[string]string, key string) (bool, bool) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("viewport size must be >= 0 (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if _, err := hotkey.ParseMode(string(cfg.App.HotkeyMode)); err != nil {
		return err
	}
	if cfg.App.TmuxFocus && strings.TrimSpace(cfg.App.SocketPath) == "" && os.Getenv("TMUX") == "" {
		return errors.New("tmux-focus requires running inside tmux or --socket")
	}
	return nil
}
