package events

import "github.com/atomicstack/tmux-menubar/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Contribution(name string, err error) {
	payload := map[string]interface{}{"name": name}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.contribution", payload)
}

func (AppTracer) MetricsListen(addr string) {
	logging.Trace("app.metrics.listen", map[string]interface{}{"addr": addr})
}
