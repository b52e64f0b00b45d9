package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := useTempLog(t)
	Trace("menu.show", map[string]interface{}{"menu": "ignored"})
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected no log file while tracing is disabled")
	}

	SetTraceEnabled(true)
	Trace("menu.show", map[string]interface{}{"menu": "file"})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "menu.show" || entry.Payload["menu"] != "file" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestErrorfPrefixesOperation(t *testing.T) {
	path := useTempLog(t)
	Errorf("open about://", errors.New("boom"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "open about://: boom") {
		t.Fatalf("expected wrapped error in log, got %q", string(data))
	}
}

func TestConfigureEmptyFallsBackToDefault(t *testing.T) {
	Configure("")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("expected %q, got %q", defaultLogFile, got)
	}
}
