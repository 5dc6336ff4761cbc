// Package testutil starts throwaway tmux servers for tests that need a real
// tmux binary.
package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Server is a temporary tmux server bound to its own socket.
type Server struct {
	Socket string
	LogDir string
}

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartTmuxServer boots a detached tmux server with one session and
// registers its shutdown with t.Cleanup.
func StartTmuxServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	baseDir, err := os.MkdirTemp("/tmp", "kaomoji-picker-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	srv := &Server{Socket: filepath.Join(baseDir, "tmux-test.sock"), LogDir: baseDir}
	cmd := tmuxCommand(srv.Socket, "-f", "/dev/null", "new-session", "-d", "-s", "kaomoji-picker-test", "sleep", "600")
	cmd.Dir = baseDir
	if err := cmd.Run(); err != nil {
		_ = os.RemoveAll(baseDir)
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		if err := tmuxCommand(srv.Socket, "kill-server").Run(); err != nil {
			t.Logf("kill-server on %s: %v", srv.Socket, err)
		}
		_ = os.RemoveAll(baseDir)
	})
	return srv
}

// Run executes a tmux command against the server and returns its trimmed
// stdout, failing the test on error.
func (s *Server) Run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := tmuxCommand(s.Socket, args...).Output()
	if err != nil {
		t.Fatalf("tmux %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out))
}

// AssertNoServerCrash scans tmux server logs in the server's directory for
// an unexpected exit. Logs only exist when the server was started verbose.
func (s *Server) AssertNoServerCrash(t *testing.T) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(s.LogDir, "tmux-server-*.log"))
	if err != nil {
		t.Fatalf("failed to glob tmux logs: %v", err)
	}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read tmux server log %s: %v", path, err)
		}
		if bytes.Contains(content, []byte("server exited unexpectedly")) {
			t.Fatalf("tmux server reported unexpected exit; see %s", path)
		}
	}
}

func tmuxCommand(socket string, extra ...string) *exec.Cmd {
	trimmed := strings.TrimSpace(socket)
	args := make([]string, 0, len(extra)+2)
	if trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	cmd := exec.Command("tmux", args...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TMUX=")
	if trimmed != "" {
		env = append(env, "TMUX_TMPDIR="+filepath.Dir(trimmed))
	}
	cmd.Env = env
	return cmd
}
