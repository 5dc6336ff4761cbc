package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan log: %v", err)
	}
	return entries
}

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "picker.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestConfigureCreatesDirectory(t *testing.T) {
	path := useTempLog(t)
	if got := Path(); got != path {
		t.Fatalf("expected path %q, got %q", path, got)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected log directory to exist: %v", err)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(false)
	Trace("picker.show", map[string]interface{}{"entries": 3})
	if entries := readEntries(t, path); len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestTraceWritesEventAndPayload(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(true)
	Trace("filter.changed", map[string]interface{}{"query": "ツ", "matches": 2})

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["event"] != "filter.changed" {
		t.Fatalf("unexpected event %v", entry["event"])
	}
	payload, ok := entry["payload"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected payload object, got %T", entry["payload"])
	}
	if payload["query"] != "ツ" || payload["matches"] != float64(2) {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected timestamp in %v", entry)
	}
}

func TestErrorAlwaysWrites(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(false)
	Error(errors.New("clipboard unavailable"))
	Error(nil)

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["level"] != "error" || entries[0]["error"] != "clipboard unavailable" {
		t.Fatalf("unexpected entry %v", entries[0])
	}
}

func TestConfigureEmptyFallsBackToDefault(t *testing.T) {
	useTempLog(t)
	Configure("  ")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("expected default log file, got %q", got)
	}
}
