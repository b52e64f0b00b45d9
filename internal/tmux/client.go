package tmux

import (
	"fmt"
	"sync"
)

// One control-mode connection is shared by the poller and menu commands.
// It is dropped after any failed call and reopened on the next one.
var (
	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string
)

func withClient(socketPath string, fn func(tmuxClient) error) error {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil && cachedSocket != socketPath {
		_ = cachedClient.Close()
		cachedClient = nil
	}
	if cachedClient == nil {
		c, err := newTmux(socketPath)
		if err != nil {
			return fmt.Errorf("connect to tmux: %w", err)
		}
		cachedClient, cachedSocket = c, socketPath
	}
	if err := fn(cachedClient); err != nil {
		_ = cachedClient.Close()
		cachedClient = nil
		return err
	}
	return nil
}

// Close releases the shared control-mode connection, if any.
func Close() error {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient == nil {
		return nil
	}
	err := cachedClient.Close()
	cachedClient, cachedSocket = nil, ""
	return err
}
