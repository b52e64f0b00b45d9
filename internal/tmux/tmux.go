package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

func tmuxArgs(socketPath string, args ...string) []string {
	return append(baseArgs(socketPath), args...)
}

// Run executes a one-shot tmux command against socketPath. Window and pane
// commands act on the client's current target, so they go through the tmux
// binary rather than the control-mode connection.
func Run(socketPath string, args ...string) error {
	if err := runExecCommand("tmux", tmuxArgs(socketPath, args...)...).Run(); err != nil {
		return fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// Reachable reports whether the server socket exists.
func Reachable(socketPath string) bool {
	if socketPath == "" {
		return false
	}
	info, err := os.Stat(socketPath)
	return err == nil && info.Mode()&os.ModeSocket != 0
}

// ResolveSocketPath picks the socket from the flag, TMUX_MENUBAR_SOCKET,
// $TMUX or the default tmux location, in that order.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_MENUBAR_SOCKET"); envSocket != "" {
		return envSocket, nil
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
