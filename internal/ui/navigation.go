package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/ui/menuview"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.palette != nil {
		return m.handlePaletteKey(keyMsg)
	}
	if root := m.openRoot(); root != nil {
		return m.handleMenuKey(root, keyMsg)
	}
	switch keyMsg.String() {
	case "f10", "alt+m":
		m.openBarEntry(0)
		return nil
	case "m":
		m.openContextMenu(0, 1)
		return nil
	}
	if id, ok := m.keys.Match(keyMsg); ok {
		events.Command.Keybinding(id, keyMsg.String())
		return m.bus.Execute(id)
	}
	return nil
}

// openRoot returns the outermost open dropdown, if any.
func (m *Model) openRoot() *menuview.View {
	if m.context != nil && m.context.IsOpen() {
		return m.context
	}
	if m.bar.IsOpen() {
		if view := m.bar.Active(); view != nil && view.IsOpen() {
			return view
		}
	}
	return nil
}

func (m *Model) isBarView(v *menuview.View) bool {
	return v != nil && m.bar.IsOpen() && m.bar.Active() == v
}

func (m *Model) handleMenuKey(root *menuview.View, msg tea.KeyMsg) tea.Cmd {
	inner := root.Innermost()
	switch msg.String() {
	case "up", "shift+tab":
		inner.Prev()
	case "down", "tab":
		inner.Next()
	case "home", "pgup":
		inner.Home()
	case "end", "pgdown":
		inner.End()
	case "right":
		if _, ok := inner.OpenSubmenu(); ok {
			return nil
		}
		if m.isBarView(root) {
			m.bar.Next()
		}
	case "left":
		if parent := parentView(root, inner); parent != nil {
			parent.CloseSubmenu(events.CloseEscape)
			return nil
		}
		if m.isBarView(root) {
			m.bar.Prev()
		}
	case "esc":
		if parent := parentView(root, inner); parent != nil {
			parent.CloseSubmenu(events.CloseEscape)
			return nil
		}
		m.closeMenus(events.CloseEscape)
	case "enter", " ":
		return m.activate(inner)
	case "f10", "alt+m":
		m.closeMenus(events.CloseEscape)
	}
	return nil
}

// parentView finds the view whose open submenu is target.
func parentView(root, target *menuview.View) *menuview.View {
	for v := root; v != nil; v = v.Submenu() {
		if v.Submenu() == target {
			return v
		}
	}
	return nil
}

// activate runs the item under the cursor of v. Menus are closed before the
// command executes so the restored focus owner is what the command sees.
func (m *Model) activate(v *menuview.View) tea.Cmd {
	item, ok := v.Active()
	if !ok {
		return nil
	}
	if item.Kind == menu.ItemSubmenu {
		v.OpenSubmenu()
		return nil
	}
	if !item.Enabled {
		m.infoMsg = fmt.Sprintf("%s is unavailable", item.Label)
		return nil
	}
	events.Menu.Activate(v.ID(), item.ID, item.Label)
	m.closeMenus(events.CloseActivate)
	return m.bus.Execute(item.CommandID)
}

func (m *Model) closeMenus(reason events.CloseReason) {
	m.bar.Close(reason)
	m.closeContextMenu(reason)
}

func (m *Model) closeContextMenu(reason events.CloseReason) {
	if m.context == nil {
		return
	}
	m.context.Close(reason)
	m.context.Dispose()
	m.context = nil
}

func (m *Model) openBarEntry(i int) bool {
	m.closeContextMenu(events.CloseSwitch)
	if m.palette != nil {
		m.closePalette()
	}
	m.infoMsg = ""
	return m.bar.Open(i)
}

// openContextMenu shows the context menu anchored at x, y. A menu with no
// visible entries is not shown.
func (m *Model) openContextMenu(x, y int) bool {
	m.closeMenus(events.CloseSwitch)
	view := m.CreateContextMenu(menu.ContextMenu)
	if !view.Open(x, y) {
		return false
	}
	if len(view.Items()) == 0 {
		view.Dispose()
		m.infoMsg = "No actions available"
		return false
	}
	m.context = view
	return true
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.Action != tea.MouseActionPress {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonRight:
		m.openContextMenu(mouse.X, mouse.Y)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if mouse.Y == 0 {
		i := m.barIndexAt(mouse.X)
		switch {
		case i < 0:
			m.closeMenus(events.CloseDismiss)
		case m.bar.IsOpen() && m.bar.Active() == m.bar.Entries()[i]:
			m.bar.Close(events.CloseEscape)
		default:
			m.openBarEntry(i)
		}
		return nil
	}
	root := m.openRoot()
	if root == nil {
		return nil
	}
	for v := root; v != nil; v = v.Submenu() {
		if idx, hit := rowAt(v, mouse.X, mouse.Y); hit {
			items := v.Items()
			if idx < 0 || idx >= len(items) || items[idx].Kind == menu.ItemSeparator {
				return nil
			}
			v.Select(items[idx].ID)
			return m.activate(v)
		}
	}
	m.closeMenus(events.CloseDismiss)
	return nil
}

func (m *Model) barIndexAt(x int) int {
	n := len(m.bar.Entries())
	for i := 0; i < n; i++ {
		if x >= m.bar.Offset(i) && x < m.bar.Offset(i+1) {
			return i
		}
	}
	return -1
}

// rowAt maps a screen cell to an item index of v. hit reports whether the
// cell lies inside the box at all.
func rowAt(v *menuview.View, x, y int) (int, bool) {
	if !v.IsOpen() {
		return -1, false
	}
	left, top := v.Position()
	if x < left || x >= left+v.Width() {
		return -1, false
	}
	rows := len(v.Items())
	if rows == 0 {
		rows = 1
	}
	if y < top || y > top+rows+1 {
		return -1, false
	}
	row := y - top - 1
	if row < 0 || row >= len(v.Items()) {
		return -1, true
	}
	offset := 0
	if lvl := v.Level(); lvl != nil {
		offset = lvl.ViewportOffset
	}
	return offset + row, true
}
