package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-menubar/internal/app"
	"github.com/atomicstack/tmux-menubar/internal/config"
)

func fakeTerminal(t *testing.T, terminals map[int]bool) {
	t.Helper()
	prevIs, prevSize := isTerminal, getSize
	isTerminal = func(fd int) bool { return terminals[fd] }
	getSize = func(fd int) (int, int, error) {
		if fd == 2 {
			return 0, 0, errors.New("no size")
		}
		return 120, 40, nil
	}
	t.Cleanup(func() {
		isTerminal = prevIs
		getSize = prevSize
	})
}

func testDescriptors() []descriptor {
	return []descriptor{{"stdin", 0}, {"stdout", 1}, {"stderr", 2}}
}

func TestInspectTerminalRecordsEachDescriptor(t *testing.T) {
	fakeTerminal(t, map[int]bool{0: true, 1: true, 2: true})
	info := inspectTerminal(testDescriptors())
	if len(info.Descriptors) != 3 {
		t.Fatalf("expected 3 descriptor entries, got %d", len(info.Descriptors))
	}
	if info.Descriptors[2].Error != "no size" || info.Descriptors[2].Width != 0 {
		t.Fatalf("expected stderr size error, got %#v", info.Descriptors[2])
	}
	source, w, h, ok := info.size()
	if !ok || source != "stdin" || w != 120 || h != 40 {
		t.Fatalf("expected stdin 120x40, got %s %dx%d", source, w, h)
	}
	if err := info.interactive(); err != nil {
		t.Fatalf("expected interactive terminal, got %v", err)
	}
}

func TestInteractiveRequiresStdinAndStdout(t *testing.T) {
	fakeTerminal(t, map[int]bool{2: true})
	err := inspectTerminal(testDescriptors()).interactive()
	if err == nil {
		t.Fatalf("expected error without a terminal")
	}
	if !strings.Contains(err.Error(), "stdin is not a terminal") || !strings.Contains(err.Error(), "stdout is not a terminal") {
		t.Fatalf("expected both descriptors reported, got %v", err)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	fakeTerminal(t, map[int]bool{0: true, 1: true})
	cfg := config.Config{
		App: app.Config{
			SocketPath:  "socket-path",
			Width:       80,
			ShowFooter:  true,
			MetricsAddr: "127.0.0.1:9464",
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		Flags: map[string]string{
			"socket":      "socket-path",
			"width":       "80",
			"metricsAddr": "127.0.0.1:9464",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg, inspectTerminal(testDescriptors()))

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["socket"] != "socket-path" || flags["width"] != "80" {
		t.Fatalf("expected socket and width flags, got %v", flags)
	}
	if flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("expected logging flags, got %v", flags)
	}
	if flags["metricsAddr"] != "127.0.0.1:9464" {
		t.Fatalf("expected metrics address, got %v", flags["metricsAddr"])
	}
	if payload["version"] != app.Version {
		t.Fatalf("expected version %q, got %v", app.Version, payload["version"])
	}
	size, ok := payload["terminal"].(map[string]interface{})
	if !ok || size["width"] != 120 || size["source"] != "stdin" {
		t.Fatalf("expected detected terminal, got %v", payload["terminal"])
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok || cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v in payload", cfg.App)
	}
}
