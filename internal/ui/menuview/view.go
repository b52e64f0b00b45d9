package menuview

import (
	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/metrics"
	"github.com/atomicstack/tmux-menubar/internal/ui/state"
)

// State is the lifecycle state of a menu view.
type State int

const (
	StateClosed State = iota
	StateBuilding
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateBuilding:
		return "building"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Focusable is something that held input focus before a menu opened.
type Focusable interface {
	ID() string
	Attached() bool
	Focus()
}

// FocusTracker reports the current focus owner. Focused may return nil.
type FocusTracker interface {
	Focused() Focusable
}

// Kinds label views in metrics and traces.
const (
	KindMenuBar = "menubar"
	KindContext = "context"
	KindSubmenu = "submenu"
)

type hook struct {
	fn func()
}

type submenuHook struct {
	fn func(child *View)
}

// View is a dropdown whose items are projected from a model node each time it
// is shown. Views are not safe for concurrent use.
type View struct {
	Kind string

	id        string
	node      *menu.Node
	projector menu.Projector
	focus     FocusTracker

	state    State
	disposed bool
	items    []menu.Item
	level    *state.Level
	captured Focusable
	x, y     int

	showHooks    []*hook
	closeHooks   []*hook
	submenuHooks []*submenuHook

	parent *View
	child  *View
}

// New returns a closed view over node. focus may be nil, in which case no
// focus is captured or restored.
func New(id string, node *menu.Node, projector menu.Projector, focus FocusTracker) *View {
	return &View{
		Kind:      KindContext,
		id:        id,
		node:      node,
		projector: projector,
		focus:     focus,
	}
}

func (v *View) ID() string { return v.id }

// Title is the submenu label of the underlying node.
func (v *View) Title() string {
	if v.node == nil {
		return v.id
	}
	if v.node.Label != "" {
		return v.node.Label
	}
	return v.node.ID
}

func (v *View) Node() *menu.Node { return v.node }

func (v *View) State() State { return v.state }

func (v *View) IsOpen() bool { return v.state == StateOpen }

// Position returns the anchor passed to Open.
func (v *View) Position() (int, int) { return v.x, v.y }

// Items returns the descriptors of the current show. It is empty while closed.
func (v *View) Items() []menu.Item { return v.items }

// Level exposes the cursor state of the open view.
func (v *View) Level() *state.Level { return v.level }

// OnAboutToShow registers fn to run right before the view is populated. The
// returned function unregisters it.
func (v *View) OnAboutToShow(fn func()) func() {
	h := &hook{fn: fn}
	v.showHooks = append(v.showHooks, h)
	return func() { v.showHooks = removeHook(v.showHooks, h) }
}

// OnAboutToClose registers fn to run when the view is dismissed.
func (v *View) OnAboutToClose(fn func()) func() {
	h := &hook{fn: fn}
	v.closeHooks = append(v.closeHooks, h)
	return func() { v.closeHooks = removeHook(v.closeHooks, h) }
}

// OnSubmenu registers fn to run with every submenu created below v, nested
// ones included, before the child is shown. Hooks the child registers on
// itself from fn fire for that show.
func (v *View) OnSubmenu(fn func(child *View)) func() {
	h := &submenuHook{fn: fn}
	v.submenuHooks = append(v.submenuHooks, h)
	return func() {
		for i, existing := range v.submenuHooks {
			if existing == h {
				v.submenuHooks = append(v.submenuHooks[:i:i], v.submenuHooks[i+1:]...)
				return
			}
		}
	}
}

func (v *View) fireSubmenu(child *View) {
	for current := v; current != nil; current = current.parent {
		for _, h := range append([]*submenuHook(nil), current.submenuHooks...) {
			if h.fn != nil {
				h.fn(child)
			}
		}
	}
}

func removeHook(hooks []*hook, target *hook) []*hook {
	for i, h := range hooks {
		if h == target {
			return append(hooks[:i:i], hooks[i+1:]...)
		}
	}
	return hooks
}

func fire(hooks []*hook) {
	for _, h := range append([]*hook(nil), hooks...) {
		if h.fn != nil {
			h.fn()
		}
	}
}

// Open anchors the view at x, y and shows it.
func (v *View) Open(x, y int) bool {
	v.x, v.y = x, y
	return v.Show()
}

// Show runs Closed -> Building -> Open. The projection is rebuilt from the
// current command state; a view that is already open is left untouched.
func (v *View) Show() bool {
	if v.disposed || v.state != StateClosed {
		return false
	}
	v.state = StateBuilding
	v.captureFocus()
	fire(v.showHooks)
	v.items = nil
	v.items = v.projector.Render(v.node)
	v.level = state.NewLevel(v.id, v.Title(), Entries(v.items))
	v.state = StateOpen
	metrics.Default.Projections.Increment(v.Kind)
	metrics.Default.MenuShows.Increment(v.id)
	events.Menu.Show(v.id, len(v.items))
	return true
}

func (v *View) captureFocus() {
	v.captured = nil
	if v.focus == nil {
		return
	}
	if f := v.focus.Focused(); f != nil {
		v.captured = f
		events.Focus.Capture(v.id, f.ID())
	}
}

// Close dismisses the view and any open submenu, then hands focus back to the
// owner captured at show time if it is still attached.
func (v *View) Close(reason events.CloseReason) bool {
	if v.state != StateOpen {
		return false
	}
	v.CloseSubmenu(reason)
	fire(v.closeHooks)
	v.state = StateClosed
	v.items = nil
	v.level = nil
	events.Menu.Close(v.id, reason)
	v.restoreFocus()
	return true
}

func (v *View) restoreFocus() {
	captured := v.captured
	v.captured = nil
	if captured == nil {
		return
	}
	if !captured.Attached() {
		events.Focus.Skip(v.id, captured.ID())
		return
	}
	captured.Focus()
	events.Focus.Restore(v.id, captured.ID())
}

// Dispose closes the view and drops its hooks. A disposed view never shows again.
func (v *View) Dispose() {
	v.Close(events.CloseDismiss)
	v.disposed = true
	v.showHooks = nil
	v.closeHooks = nil
	v.submenuHooks = nil
}

func (v *View) Disposed() bool { return v.disposed }

// Active returns the descriptor under the cursor.
func (v *View) Active() (menu.Item, bool) {
	if v.level == nil {
		return menu.Item{}, false
	}
	idx := v.level.Cursor
	if idx < 0 || idx >= len(v.items) || v.items[idx].Kind == menu.ItemSeparator {
		return menu.Item{}, false
	}
	return v.items[idx], true
}

func (v *View) Next() bool { return v.move(func(l *state.Level) bool { return l.MoveCursorDown() }) }

func (v *View) Prev() bool { return v.move(func(l *state.Level) bool { return l.MoveCursorUp() }) }

func (v *View) Home() bool { return v.move(func(l *state.Level) bool { return l.MoveCursorHome() }) }

func (v *View) End() bool { return v.move(func(l *state.Level) bool { return l.MoveCursorEnd() }) }

func (v *View) move(fn func(*state.Level) bool) bool {
	if v.level == nil {
		return false
	}
	v.CloseSubmenu(events.CloseSwitch)
	moved := fn(v.level)
	if moved {
		events.Menu.Cursor(v.id, v.level.Cursor)
	}
	return moved
}

// Select moves the cursor to the item with id.
func (v *View) Select(id string) bool {
	if v.level == nil {
		return false
	}
	idx := v.level.IndexOf(id)
	if idx < 0 {
		return false
	}
	if idx != v.level.Cursor {
		v.CloseSubmenu(events.CloseSwitch)
		v.level.Cursor = idx
	}
	return true
}

// Submenu returns the open child view, if any.
func (v *View) Submenu() *View { return v.child }

// Innermost returns the deepest open view in the chain starting at v.
func (v *View) Innermost() *View {
	current := v
	for current.child != nil && current.child.IsOpen() {
		current = current.child
	}
	return current
}

// OpenSubmenu shows the active submenu item as a child view. The child
// projects only its own node, at the moment it becomes visible.
func (v *View) OpenSubmenu() (*View, bool) {
	item, ok := v.Active()
	if !ok || item.Kind != menu.ItemSubmenu || item.Node == nil {
		return nil, false
	}
	if v.child != nil && v.child.node == item.Node && v.child.IsOpen() {
		return v.child, true
	}
	v.CloseSubmenu(events.CloseSwitch)
	child := New(v.id+"/"+item.ID, item.Node, v.projector, nil)
	child.Kind = KindSubmenu
	child.parent = v
	v.fireSubmenu(child)
	x := v.x + v.Width()
	y := v.y + v.level.Cursor
	if !child.Open(x, y) {
		return nil, false
	}
	v.child = child
	return child, true
}

// CloseSubmenu closes and drops the child view.
func (v *View) CloseSubmenu(reason events.CloseReason) bool {
	if v.child == nil {
		return false
	}
	child := v.child
	v.child = nil
	return child.Close(reason)
}

// Entries converts descriptors into list rows.
func Entries(items []menu.Item) []state.Entry {
	entries := make([]state.Entry, len(items))
	for i, item := range items {
		switch item.Kind {
		case menu.ItemSeparator:
			entries[i] = state.Entry{Separator: true}
		case menu.ItemSubmenu:
			entries[i] = state.Entry{ID: item.ID, Label: item.Label, Submenu: true}
		default:
			entries[i] = state.Entry{
				ID:       item.ID,
				Label:    item.Label,
				Hint:     item.Accelerator,
				Disabled: !item.Enabled,
				Toggled:  item.Toggled,
			}
		}
	}
	return entries
}
