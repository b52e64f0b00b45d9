package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-menubar/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envSocketPath   = "TMUX_MENUBAR_SOCKET"
	envWidth        = "TMUX_MENUBAR_WIDTH"
	envHeight       = "TMUX_MENUBAR_HEIGHT"
	envShowFooter   = "TMUX_MENUBAR_FOOTER"
	envVerbose      = "TMUX_MENUBAR_VERBOSE"
	envTrace        = "TMUX_MENUBAR_TRACE"
	envLogFile      = "TMUX_MENUBAR_LOG_FILE"
	envMetricsAddr  = "TMUX_MENUBAR_METRICS_ADDR"
	envPollInterval = "TMUX_MENUBAR_POLL_INTERVAL"
	envOpenMenu     = "TMUX_MENUBAR_OPEN"

	defaultPollInterval = 1500 * time.Millisecond
	minPollInterval     = 100 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-menubar", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOr(env, envWidth, 0, strconv.Atoi), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOr(env, envHeight, 0, strconv.Atoi), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOr(env, envShowFooter, false, strconv.ParseBool), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOr(env, envTrace, false, strconv.ParseBool), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOr(env, envVerbose, false, strconv.ParseBool), "show tmux polling errors in the status line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve Prometheus metrics on this address (empty disables)")
	poll := fs.Duration("poll-interval", envOr(env, envPollInterval, defaultPollInterval, time.ParseDuration), "how often tmux sessions are polled")
	open := fs.Bool("open", envOr(env, envOpenMenu, false, strconv.ParseBool), "open the first menu on startup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   *socket,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			OpenMenuBar:  *open,
			MetricsAddr:  *metricsAddr,
			PollInterval: *poll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"socket":       *socket,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"metricsAddr":  *metricsAddr,
			"pollInterval": poll.String(),
			"open":         strconv.FormatBool(*open),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// envOr parses env[key] with parse, keeping fallback when the variable is
// unset, blank or malformed.
func envOr[T any](env map[string]string, key string, fallback T, parse func(string) (T, error)) T {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := parse(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.PollInterval < minPollInterval {
		return fmt.Errorf("poll-interval must be >= %s (got %s)", minPollInterval, cfg.App.PollInterval)
	}
	if addr := cfg.App.MetricsAddr; addr != "" && !strings.Contains(addr, ":") {
		return fmt.Errorf("metrics-addr must be host:port (got %q)", addr)
	}
	return nil
}
