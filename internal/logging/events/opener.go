package events

import "github.com/atomicstack/tmux-menubar/internal/logging"

type OpenerTracer struct{}

var Opener = OpenerTracer{}

func (OpenerTracer) Open(handler, uri, mode string) {
	logging.Trace("opener.open", map[string]interface{}{"handler": handler, "uri": uri, "mode": mode})
}

func (OpenerTracer) Create(factory, widgetID string) {
	logging.Trace("opener.create", map[string]interface{}{"factory": factory, "widget": widgetID})
}

func (OpenerTracer) Reuse(factory, widgetID string) {
	logging.Trace("opener.reuse", map[string]interface{}{"factory": factory, "widget": widgetID})
}

func (OpenerTracer) Place(widgetID, mode string) {
	logging.Trace("opener.place", map[string]interface{}{"widget": widgetID, "mode": mode})
}

func (OpenerTracer) Disposed(widgetID string) {
	logging.Trace("opener.disposed", map[string]interface{}{"widget": widgetID})
}

func (OpenerTracer) Error(uri string, err error) {
	if err == nil {
		return
	}
	logging.Trace("opener.error", map[string]interface{}{"uri": uri, "error": err.Error()})
}
