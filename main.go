package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/tmux-menubar/internal/app"
	"github.com/atomicstack/tmux-menubar/internal/config"
	"github.com/atomicstack/tmux-menubar/internal/logging"
	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"golang.org/x/term"
)

var (
	isTerminal = term.IsTerminal
	getSize    = term.GetSize
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty := inspectTerminal(standardDescriptors())
	events.App.Start(startupTracePayload(cfg, tty))
	if err := tty.interactive(); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

type descriptorState struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

type terminalInfo struct {
	Descriptors []descriptorState `json:"descriptors"`
}

func inspectTerminal(fds []descriptor) terminalInfo {
	info := terminalInfo{Descriptors: make([]descriptorState, 0, len(fds))}
	for _, d := range fds {
		p := descriptorState{Name: d.name}
		if d.fd >= 0 && isTerminal(d.fd) {
			p.IsTerminal = true
			if w, h, err := getSize(d.fd); err != nil {
				p.Error = err.Error()
			} else {
				p.Width, p.Height = w, h
			}
		}
		info.Descriptors = append(info.Descriptors, p)
	}
	return info
}

// size returns the dimensions of the first descriptor that reported any.
func (t terminalInfo) size() (string, int, int, bool) {
	for _, p := range t.Descriptors {
		if p.IsTerminal && p.Width > 0 && p.Height > 0 {
			return p.Name, p.Width, p.Height, true
		}
	}
	return "", 0, 0, false
}

// interactive fails unless both stdin and stdout are terminals; the menu bar
// reads keys and mouse events from one and draws on the other.
func (t terminalInfo) interactive() error {
	var missing []error
	for _, name := range []string{"stdin", "stdout"} {
		ok := false
		for _, p := range t.Descriptors {
			if p.Name == name && p.IsTerminal {
				ok = true
			}
		}
		if !ok {
			missing = append(missing, fmt.Errorf("%s is not a terminal", name))
		}
	}
	return errors.Join(missing...)
}

func startupTracePayload(cfg config.Config, tty terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"version": app.Version,
		"tty":     tty,
	}
	if source, w, h, ok := tty.size(); ok {
		payload["terminal"] = map[string]interface{}{"source": source, "width": w, "height": h}
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}
