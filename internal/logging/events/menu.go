package events

import "github.com/atomicstack/tmux-menubar/internal/logging"

type MenuTracer struct{}

type FocusTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type CloseReason string

const (
	CloseEscape   CloseReason = "escape"
	CloseActivate CloseReason = "activate"
	CloseSwitch   CloseReason = "switch"
	CloseDismiss  CloseReason = "dismiss"
)

var (
	Menu    = MenuTracer{}
	Focus   = FocusTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (MenuTracer) Show(menuID string, items int) {
	logging.Trace("menu.show", map[string]interface{}{"menu": menuID, "items": items})
}

func (MenuTracer) Close(menuID string, reason CloseReason) {
	logging.Trace("menu.close", map[string]interface{}{"menu": menuID, "reason": string(reason)})
}

func (MenuTracer) Cursor(menuID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"menu": menuID, "cursor": cursor})
}

func (MenuTracer) Activate(menuID, itemID, label string) {
	logging.Trace("menu.activate", map[string]interface{}{
		"menu":  menuID,
		"item":  itemID,
		"label": label,
	})
}

func (MenuTracer) BarSelect(from, to string) {
	logging.Trace("menubar.select", map[string]interface{}{"from": from, "to": to})
}

func (MenuTracer) BarRefresh(entries []string) {
	logging.Trace("menubar.refresh", map[string]interface{}{"entries": entries})
}

func (MenuTracer) Palette(query string, matches int) {
	logging.Trace("palette.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (FocusTracer) Capture(menuID, widgetID string) {
	logging.Trace("focus.capture", map[string]interface{}{"menu": menuID, "widget": widgetID})
}

func (FocusTracer) Restore(menuID, widgetID string) {
	logging.Trace("focus.restore", map[string]interface{}{"menu": menuID, "widget": widgetID})
}

func (FocusTracer) Skip(menuID, widgetID string) {
	logging.Trace("focus.skip", map[string]interface{}{"menu": menuID, "widget": widgetID})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, reason string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "reason": reason})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CommandTracer) Keybinding(id, keys string) {
	logging.Trace("command.keybinding", map[string]interface{}{"id": id, "keys": keys})
}
