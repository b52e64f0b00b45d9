package tmux

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

var ErrEmptyTarget = errors.New("empty target")

// ListSessions returns the server's sessions in tmux order. Attachment is
// derived from real clients so the control-mode connection is not counted.
func ListSessions(socketPath string) ([]Session, error) {
	var (
		raw       []*gotmux.Session
		clients   []*gotmux.Client
		clientsOK bool
	)
	err := withClient(socketPath, func(c tmuxClient) error {
		var err error
		if raw, err = c.ListSessions(); err != nil {
			return err
		}
		if list, err := c.ListClients(); err == nil {
			clients, clientsOK = list, true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(raw) == 0 {
		if fallback, err := fetchSessionsFallback(socketPath); err == nil {
			raw = fallback
		}
	}
	attached := realAttachedClients(clients)
	out := make([]Session, 0, len(raw))
	for _, s := range raw {
		if s == nil {
			continue
		}
		entry := Session{Name: s.Name, Windows: s.Windows, Clients: attached[s.Name]}
		if clientsOK {
			entry.Attached = len(entry.Clients) > 0
		} else {
			entry.Attached = s.Attached > 0
		}
		out = append(out, entry)
	}
	return out, nil
}

// realAttachedClients maps session names to the non-control-mode clients
// attached to them.
func realAttachedClients(clients []*gotmux.Client) map[string][]string {
	result := make(map[string][]string)
	for _, c := range clients {
		if c == nil || c.ControlMode || c.Session == "" {
			continue
		}
		result[c.Session] = append(result[c.Session], c.Name)
	}
	return result
}

// fetchSessionsFallback asks tmux directly when the control-mode listing comes
// back empty, which happens while the connection is still settling.
func fetchSessionsFallback(socketPath string) ([]*gotmux.Session, error) {
	format := "#{session_name}\t#{session_windows}\t#{session_attached}"
	output, err := runExecCommand("tmux", tmuxArgs(socketPath, "list-sessions", "-F", format)...).Output()
	if err != nil {
		return nil, err
	}
	var sessions []*gotmux.Session
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "\t", 3)
		if len(parts) < 3 || parts[0] == "" {
			continue
		}
		windows, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
		attached, _ := strconv.Atoi(strings.TrimSpace(parts[2]))
		sessions = append(sessions, &gotmux.Session{
			Name:     strings.TrimSpace(parts[0]),
			Windows:  windows,
			Attached: attached,
		})
	}
	return sessions, nil
}

// SwitchClient moves the current client to target.
func SwitchClient(socketPath, target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("switch-client: %w", ErrEmptyTarget)
	}
	err := withClient(socketPath, func(c tmuxClient) error {
		return c.SwitchClient(&gotmux.SwitchClientOptions{TargetSession: target})
	})
	if err != nil {
		return fmt.Errorf("switch-client %s: %w", target, err)
	}
	return nil
}

// NewSession creates a detached session. An empty name lets tmux pick one.
func NewSession(socketPath, name string) error {
	err := withClient(socketPath, func(c tmuxClient) error {
		_, err := c.NewSession(&gotmux.SessionOptions{Name: name})
		return err
	})
	if err != nil {
		return fmt.Errorf("new-session: %w", err)
	}
	return nil
}
