package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/kaomoji-picker/internal/app"
	"github.com/atomicstack/kaomoji-picker/internal/config"
	"github.com/atomicstack/kaomoji-picker/internal/hotkey"
	"github.com/atomicstack/kaomoji-picker/internal/logging"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picker.log")
	t.Cleanup(func() {
		logging.Configure("")
		logging.SetTraceEnabled(false)
	})
	return path
}

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			CatalogPath: "/opt/emotes.txt",
			HotkeyMode:  hotkey.ModeSignal,
			Width:       80,
			Height:      24,
			ShowFooter:  true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"catalog":      "/opt/emotes.txt",
			"hotkeySource": "signal",
			"width":        "80",
		},
		Args: []string{"--catalog", "/opt/emotes.txt"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["catalog"] != "/opt/emotes.txt" {
		t.Fatalf("expected catalog flag, got %v", flagsValue["catalog"])
	}
	if flagsValue["hotkeySource"] != "signal" {
		t.Fatalf("expected hotkey source signal, got %v", flagsValue["hotkeySource"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRunUnknownFlagExitsWithConfigCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-such-flag"}, nil, &stdout, &stderr)
	if code != exitConfig {
		t.Fatalf("expected exit %d, got %d (stderr %q)", exitConfig, code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Configuration error") {
		t.Fatalf("expected configuration error message, got %q", stderr.String())
	}
}

func TestRunInvalidHotkeySourceExitsWithConfigCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--hotkey-source", "dbus"}, nil, &stdout, &stderr)
	if code != exitConfig {
		t.Fatalf("expected exit %d, got %d", exitConfig, code)
	}
}

func TestRunMissingCatalogExitsWithRuntimeCode(t *testing.T) {
	logPath := useTempLog(t)
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--catalog", filepath.Join(dir, "emotes.txt"),
		"--runtime-dir", filepath.Join(dir, "run"),
		"--log-file", logPath,
	}, nil, &stdout, &stderr)
	if code != exitRuntime {
		t.Fatalf("expected exit %d, got %d (stderr %q)", exitRuntime, code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "emotes.txt") {
		t.Fatalf("expected probed path in error, got %q", stderr.String())
	}
}

func TestActivateWithoutInstanceFails(t *testing.T) {
	logPath := useTempLog(t)
	dir := filepath.Join(t.TempDir(), "absent")
	var stdout, stderr bytes.Buffer
	code := run([]string{"activate", "--runtime-dir", dir, "--log-file", logPath}, nil, &stdout, &stderr)
	if code != exitRuntime {
		t.Fatalf("expected exit %d, got %d", exitRuntime, code)
	}
	if !strings.Contains(stderr.String(), "no running picker") {
		t.Fatalf("expected no-instance error, got %q", stderr.String())
	}
}

func TestActivateTouchesTrigger(t *testing.T) {
	logPath := useTempLog(t)
	dir := t.TempDir()
	src, err := hotkey.NewTriggerSource(dir, 0)
	if err != nil {
		t.Fatalf("start trigger source: %v", err)
	}
	defer src.Stop()
	var stdout, stderr bytes.Buffer
	env := []string{"KAOMOJI_PICKER_RUNTIME_DIR=" + dir}
	if code := run([]string{"activate", "--log-file", logPath}, env, &stdout, &stderr); code != 0 {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr.String())
	}
	select {
	case evt, ok := <-src.Events():
		if !ok || evt.Err != nil {
			t.Fatalf("expected activation event, got %#v (ok=%v)", evt, ok)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for activation")
	}
}

func TestHelpListsActivate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("expected help to succeed, got %d", code)
	}
	if !strings.Contains(stdout.String(), "activate") {
		t.Fatalf("expected activate subcommand in help, got:\n%s", stdout.String())
	}
}
