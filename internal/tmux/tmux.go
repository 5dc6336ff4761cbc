// Package tmux installs the picker hotkey as a tmux key binding and moves the
// tmux client to and from the picker pane.
package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/atomicstack/kaomoji-picker/internal/logging/events"
)

// runner executes one tmux invocation and returns its stdout.
type runner func(args ...string) (string, error)

// Client runs tmux commands against one server socket.
type Client struct {
	socket string
	run    runner
}

// New returns a client for socketPath. An empty path uses tmux defaults.
func New(socketPath string) *Client {
	c := &Client{socket: strings.TrimSpace(socketPath)}
	c.run = c.exec
	return c
}

func (c *Client) args(extra ...string) []string {
	args := make([]string, 0, len(extra)+2)
	if c.socket != "" {
		args = append(args, "-S", c.socket)
	}
	return append(args, extra...)
}

func (c *Client) exec(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	if dir := socketDir(c.socket); dir != "" {
		cmd.Env = append(os.Environ(), "TMUX_TMPDIR="+dir)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tmux %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

func (c *Client) query(extra ...string) (string, error) {
	args := c.args(extra...)
	out, err := c.run(args...)
	events.Tmux.Run(args, err)
	return out, err
}

func (c *Client) command(extra ...string) error {
	_, err := c.query(extra...)
	return err
}

// BindHotkey binds key in the root table so it runs command without the
// prefix key.
func (c *Client) BindHotkey(key, command string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("empty tmux key")
	}
	return c.command("bind-key", "-n", key, "run-shell", "-b", command)
}

// Location is an attached client and the window it is showing.
type Location struct {
	Client string // client tty
	Target string // session_id:window_id
}

const clientFormat = "#{client_activity}\t#{client_tty}\t#{session_id}:#{window_id}"

// ActiveClient reports the most recently active attached client, which is
// the one whose key press activated the picker.
func (c *Client) ActiveClient() (Location, error) {
	out, err := c.query("list-clients", "-F", clientFormat)
	if err != nil {
		return Location{}, err
	}
	var (
		best     Location
		bestSeen int64 = -1
	)
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "\t", 3)
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			continue
		}
		seen, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			continue
		}
		if seen > bestSeen {
			bestSeen = seen
			best = Location{Client: parts[1], Target: parts[2]}
		}
	}
	if bestSeen < 0 {
		return Location{}, fmt.Errorf("no attached tmux client")
	}
	return best, nil
}

// SwitchClient points client at target. A pane or window target also makes
// that window current in its session.
func (c *Client) SwitchClient(client, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("no tmux target to switch to")
	}
	args := []string{"switch-client"}
	if client = strings.TrimSpace(client); client != "" {
		args = append(args, "-c", client)
	}
	return c.command(append(args, "-t", target)...)
}

// Focus moves the active tmux client to the picker pane when it is shown and
// back to the window it came from when it is hidden.
type Focus struct {
	client *Client
	pane   string

	mu     sync.Mutex
	origin *Location
}

// NewFocus targets the pane the picker runs in.
func NewFocus(client *Client, pane string) *Focus {
	return &Focus{client: client, pane: strings.TrimSpace(pane)}
}

// Show records where the active client is and focuses the picker pane. While
// already shown the first origin is kept.
func (f *Focus) Show() error {
	if f.pane == "" {
		return fmt.Errorf("no tmux pane to focus")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, err := f.client.ActiveClient()
	if err != nil {
		return err
	}
	if f.origin == nil {
		f.origin = &loc
	}
	return f.client.SwitchClient(f.origin.Client, f.pane)
}

// Hide switches the client back to the recorded window. Without a recorded
// origin it does nothing.
func (f *Focus) Hide() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.origin == nil {
		return nil
	}
	origin := *f.origin
	f.origin = nil
	return f.client.SwitchClient(origin.Client, origin.Target)
}

// CurrentPane returns the pane id tmux assigned to this process, if any.
func CurrentPane() string {
	return strings.TrimSpace(os.Getenv("TMUX_PANE"))
}

// ActivateCommand builds the shell command a key binding runs to reach this
// instance.
func ActivateCommand(exe string, args ...string) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, shellQuote(exe), "activate")
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~!{}") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ResolveSocketPath picks the tmux server socket: the flag value, then
// $TMUX, then the default per-user socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func socketDir(socket string) string {
	trimmed := strings.TrimSpace(socket)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}
