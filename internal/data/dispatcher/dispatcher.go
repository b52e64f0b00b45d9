package dispatcher

import (
	"github.com/atomicstack/tmux-menubar/internal/backend"
	"github.com/atomicstack/tmux-menubar/internal/state"
	"github.com/atomicstack/tmux-menubar/internal/tmux"
)

type Result struct {
	ServerChanged   bool
	SessionsUpdated bool
	MenuChanged     bool
	Err             error
}

// SessionSink receives session lists that differ from the previous one.
type SessionSink interface {
	Sync([]tmux.Session) bool
}

type Dispatcher struct {
	sessions state.SessionStore
	sink     SessionSink
}

func New(s state.SessionStore, sink SessionSink) *Dispatcher {
	return &Dispatcher{sessions: s, sink: sink}
}

// Handle applies a backend event. It must run on the goroutine that owns the
// menu registry.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Kind == backend.KindServer {
		res.ServerChanged = true
		res.MenuChanged = true
		return res
	}
	if evt.Err != nil {
		d.sessions.SetErr(evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindSessions:
		if !d.sessions.SetEntries(evt.Sessions) {
			return res
		}
		res.SessionsUpdated = true
		if d.sink != nil {
			res.MenuChanged = d.sink.Sync(d.sessions.Entries())
		}
	}
	return res
}
