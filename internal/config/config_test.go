package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.MetricsAddr != "" || cfg.App.OpenMenuBar || cfg.App.ShowFooter {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		envSocketPath + "=/tmp/env.sock",
		envWidth + "=100",
		envMetricsAddr + "=127.0.0.1:9000",
		envPollInterval + "=2s",
		envOpenMenu + "=true",
		"MALFORMED",
	}
	cfg, err := LoadArgs([]string{"-socket", "/tmp/flag.sock", "-poll-interval", "500ms"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SocketPath != "/tmp/flag.sock" {
		t.Fatalf("expected flag socket, got %q", cfg.App.SocketPath)
	}
	if cfg.App.Width != 100 {
		t.Fatalf("expected env width 100, got %d", cfg.App.Width)
	}
	if cfg.App.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected flag poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.MetricsAddr != "127.0.0.1:9000" || !cfg.App.OpenMenuBar {
		t.Fatalf("expected env metrics and open flags, got %#v", cfg.App)
	}
	if cfg.Flags["pollInterval"] != "500ms" || cfg.Flags["open"] != "true" {
		t.Fatalf("unexpected flag map %#v", cfg.Flags)
	}
}

func TestLoadArgsIgnoresBadEnvironmentValues(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{envHeight + "=tall", envPollInterval + "=soon", envTrace + "=maybe"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.PollInterval != defaultPollInterval || cfg.Logging.Trace {
		t.Fatalf("expected fallbacks, got %#v", cfg)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil || !strings.Contains(err.Error(), "width") {
		t.Fatalf("expected width error, got %v", err)
	}
	if _, err := LoadArgs([]string{"-bogus"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-poll-interval", "10ms"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected short poll interval rejected")
	}
	cfg, _ = LoadArgs([]string{"-metrics-addr", "9090"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected bare port rejected")
	}
	cfg, _ = LoadArgs([]string{"-metrics-addr", ":9090"}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected :9090 accepted, got %v", err)
	}
}
