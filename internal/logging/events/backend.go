package events

import "github.com/atomicstack/tmux-menubar/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Server(socket string, reachable bool) {
	logging.Trace("backend.server", map[string]interface{}{"socket": socket, "reachable": reachable})
}

func (BackendTracer) Sessions(count int, menuChanged bool) {
	logging.Trace("backend.sessions", map[string]interface{}{"count": count, "menuChanged": menuChanged})
}
