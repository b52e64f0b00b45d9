package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-menubar/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	// KindSessions carries the current session list.
	KindSessions Kind = iota
	// KindServer reports that the server became reachable or went away.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindSessions:
		return "sessions"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind      Kind
	Sessions  []tmux.Session
	Reachable bool
	Err       error
}

var (
	fetchSessions = tmux.ListSessions
	checkServer   = tmux.Reachable
)

const maxBackoff = 30 * time.Second

// Watcher polls tmux and publishes events until stopped.
type Watcher struct {
	socketPath string
	interval   time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling the server behind socketPath every interval.
// Failed polls back off up to 30s.
func NewWatcher(socketPath string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		socketPath: socketPath,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
		events:     make(chan Event, 16),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w
}

// Events returns a channel of backend events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and Events is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	delay := newBackoff(w.interval, maxBackoff)
	known, reachable := false, false
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-timer.C:
		}

		up := checkServer(w.socketPath)
		if !known || up != reachable {
			known, reachable = true, up
			if !w.emit(Event{Kind: KindServer, Reachable: up}) {
				return
			}
		}
		sessions, err := fetchSessions(w.socketPath)
		if !w.emit(Event{Kind: KindSessions, Sessions: sessions, Reachable: up, Err: err}) {
			return
		}
		timer.Reset(delay.next(err != nil))
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
