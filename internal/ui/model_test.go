package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-menubar/internal/backend"
	"github.com/atomicstack/tmux-menubar/internal/command"
	"github.com/atomicstack/tmux-menubar/internal/keybinding"
	"github.com/atomicstack/tmux-menubar/internal/logging"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/shell"
	"github.com/atomicstack/tmux-menubar/internal/tmux"
	"github.com/atomicstack/tmux-menubar/internal/widget"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness(t *testing.T) *Harness {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "menubar.log"))
	t.Cleanup(func() { logging.Configure("") })
	m := NewModel(Options{Width: 80, Height: 24, SocketPath: filepath.Join(t.TempDir(), "missing")})
	t.Cleanup(m.Shutdown)
	return NewHarness(m)
}

func itemLabels(items []menu.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind == menu.ItemSeparator {
			parts = append(parts, "-")
			continue
		}
		parts = append(parts, item.Label)
	}
	return strings.Join(parts, ",")
}

func activeBarID(m *Model) string {
	if !m.bar.IsOpen() {
		return ""
	}
	return m.bar.Active().ID()
}

func TestBarEntriesFollowContributionOrder(t *testing.T) {
	h := newTestHarness(t)
	var ids []string
	for _, v := range h.Model().bar.Entries() {
		ids = append(ids, v.ID())
	}
	if got := strings.Join(ids, ","); got != "file,view,session,window,pane,help" {
		t.Fatalf("unexpected bar entries %q", got)
	}
	if !strings.Contains(h.View(), " File  View  Session ") {
		t.Fatalf("expected bar titles in view:\n%s", h.View())
	}
}

func TestF10OpensBarAndArrowsSwitchEntries(t *testing.T) {
	h := newTestHarness(t)
	h.Keys("f10")
	if got := activeBarID(h.Model()); got != "file" {
		t.Fatalf("expected file menu open, got %q", got)
	}
	if got := itemLabels(h.Model().bar.Active().Items()); got != "Command Palette,-,Quit" {
		t.Fatalf("unexpected file menu %q", got)
	}
	h.Keys("right")
	if got := activeBarID(h.Model()); got != "view" {
		t.Fatalf("expected view menu after right, got %q", got)
	}
	h.Keys("left", "left")
	if got := activeBarID(h.Model()); got != "help" {
		t.Fatalf("expected wrap to help, got %q", got)
	}
	h.Keys("esc")
	if h.Model().bar.IsOpen() {
		t.Fatalf("expected esc to close the bar")
	}
}

func TestActivatingItemClosesMenuAndExecutes(t *testing.T) {
	h := newTestHarness(t)
	h.Keys("f10", "right", "enter")
	if h.Model().bar.IsOpen() {
		t.Fatalf("expected bar closed after activation")
	}
	if !h.Model().showFooter {
		t.Fatalf("expected footer toggled on")
	}
	if !strings.Contains(h.View(), footerHint) {
		t.Fatalf("expected footer in view:\n%s", h.View())
	}

	h.Keys("f10", "right")
	items := h.Model().bar.Active().Items()
	if !items[0].Toggled {
		t.Fatalf("expected reopened view to project the toggled state")
	}
}

func TestDisabledItemStaysOpenWithInfo(t *testing.T) {
	h := newTestHarness(t)
	m := h.Model()
	h.Send(tea.MouseMsg{X: m.bar.Offset(m.bar.Index("window")), Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := activeBarID(m); got != "window" {
		t.Fatalf("expected window menu from click, got %q", got)
	}
	h.Keys("enter")
	if !m.bar.IsOpen() {
		t.Fatalf("expected menu to stay open on a disabled item")
	}
	if !strings.Contains(m.infoMsg, "Next Window is unavailable") {
		t.Fatalf("expected unavailable info, got %q", m.infoMsg)
	}
}

func TestClickingOpenBarEntryCloses(t *testing.T) {
	h := newTestHarness(t)
	click := tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	h.Send(click)
	if got := activeBarID(h.Model()); got != "file" {
		t.Fatalf("expected file menu open, got %q", got)
	}
	h.Send(click)
	if h.Model().bar.IsOpen() {
		t.Fatalf("expected second click to close the menu")
	}
}

func TestDropdownRendersOverBody(t *testing.T) {
	h := newTestHarness(t)
	h.Keys("f10")
	lines := strings.Split(h.View(), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "Command Palette") {
		t.Fatalf("expected first item on line 2, got %q", lines[2])
	}
	if !strings.Contains(lines[4], "Ctrl+Q") {
		t.Fatalf("expected quit accelerator on line 4, got %q", lines[4])
	}
}

func TestHelpKeyOpensWidgetAndContextMenuClosesIt(t *testing.T) {
	h := newTestHarness(t)
	h.Keys("f1")
	m := h.Model()
	active, ok := m.shell.Active()
	if !ok || active.Title() != "Keybindings" {
		t.Fatalf("expected keybindings widget focused, got %v", active)
	}
	view := h.View()
	for _, want := range []string{"Ctrl+P", "Command Palette", "F10, Alt+M"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}

	h.Keys("m")
	if m.context == nil || !m.context.IsOpen() {
		t.Fatalf("expected context menu open")
	}
	if got := itemLabels(m.context.Items()); got != "Close Panel,Command Palette" {
		t.Fatalf("unexpected context menu %q", got)
	}
	h.Keys("enter")
	if m.context != nil {
		t.Fatalf("expected context menu disposed after activation")
	}
	if len(m.shell.Widgets()) != 0 {
		t.Fatalf("expected focused widget closed, got %d widgets", len(m.shell.Widgets()))
	}
}

func TestMenuCommandOpensSecondWidgetAndTabCycles(t *testing.T) {
	h := newTestHarness(t)
	m := h.Model()
	h.Keys("f1", "f10", "left", "down", "enter")
	active, ok := m.shell.Active()
	if !ok || active.Title() != "About" {
		t.Fatalf("expected about widget focused, got %v", active)
	}
	if len(m.shell.Widgets()) != 2 {
		t.Fatalf("expected two docked widgets, got %d", len(m.shell.Widgets()))
	}
	h.Keys("tab")
	if active, _ := m.shell.Active(); active.Title() != "Keybindings" {
		t.Fatalf("expected tab to focus keybindings, got %s", active.Title())
	}

	// Reopening about reuses the docked widget.
	h.Keys("f10", "left", "down", "enter")
	if len(m.shell.Widgets()) != 2 {
		t.Fatalf("expected widget reuse, got %d widgets", len(m.shell.Widgets()))
	}
}

func TestMenuCloseRestoresFocusToWidget(t *testing.T) {
	h := newTestHarness(t)
	m := h.Model()
	h.Keys("f1")
	first, _ := m.shell.Active()

	other := widget.NewText("Other", "")
	if err := m.shell.AddWidget(other, shell.Placement{Area: shell.AreaBottom}); err != nil {
		t.Fatalf("add widget: %v", err)
	}
	h.Keys("f10")
	m.shell.ActivateWidget(other.ID())
	h.Keys("esc")
	if active, ok := m.shell.Active(); !ok || active.ID() != first.ID() {
		t.Fatalf("expected focus restored to %s", first.ID())
	}

	h.Keys("f10")
	m.shell.ActivateWidget(other.ID())
	m.shell.CloseWidget(first.ID())
	h.Keys("esc")
	if active, ok := m.shell.Active(); !ok || active.ID() != other.ID() {
		t.Fatalf("expected closed widget not to take focus back")
	}
}

func TestPaletteFiltersAndExecutes(t *testing.T) {
	h := newTestHarness(t)
	h.Keys("ctrl+p")
	m := h.Model()
	if m.palette == nil {
		t.Fatalf("expected palette open")
	}
	if !strings.Contains(h.View(), "type a command") {
		t.Fatalf("expected placeholder in view:\n%s", h.View())
	}
	for _, r := range "footer" {
		h.Keys(string(r))
	}
	entry, ok := m.palette.Current()
	if !ok || entry.ID != CmdToggleFooter {
		t.Fatalf("expected footer toggle selected, got %#v", entry)
	}
	if entry.Label != "View: Show Footer" {
		t.Fatalf("expected path-qualified label, got %q", entry.Label)
	}
	h.Keys("enter")
	if m.palette != nil || !m.showFooter {
		t.Fatalf("expected palette closed and footer shown")
	}

	h.Keys("ctrl+p")
	if entry, _ := m.palette.Current(); entry.ID != CmdToggleFooter {
		t.Fatalf("expected last selection remembered, got %q", entry.ID)
	}
	h.Keys("x", "backspace", "esc")
	if m.palette != nil {
		t.Fatalf("expected esc to close the palette")
	}
}

func TestRightClickOpensContextMenuAtPointer(t *testing.T) {
	h := newTestHarness(t)
	m := h.Model()
	h.Send(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.context == nil {
		t.Fatalf("expected context menu")
	}
	if x, y := m.context.Position(); x != 10 || y != 5 {
		t.Fatalf("expected anchor 10,5, got %d,%d", x, y)
	}
	if got := itemLabels(m.context.Items()); got != "Command Palette" {
		t.Fatalf("expected tmux and panel items hidden, got %q", got)
	}

	h.Send(tea.MouseMsg{X: 60, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.context != nil {
		t.Fatalf("expected click outside to dismiss")
	}

	h.Send(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	h.Send(tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.palette == nil {
		t.Fatalf("expected clicking the item to open the palette")
	}
}

type toolsContribution struct{ ran *int }

func (toolsContribution) Name() string { return "tools" }

func (c toolsContribution) RegisterCommands(r *command.Registry) error {
	return r.RegisterCommand(command.Command{ID: "tools.count", Label: "Count"}, command.Handler{
		Execute: func(command.Context) tea.Cmd {
			*c.ran++
			return func() tea.Msg { return command.Result{ID: "tools.count", Info: "counted"} }
		},
	})
}

func (toolsContribution) RegisterMenus(r *menu.Registry) {
	path := menu.MainMenu.Append("tools")
	r.RegisterSubmenu(path, "Tools")
	r.RegisterAction(path, menu.ActionSpec{CommandID: "tools.count"})
}

func (toolsContribution) RegisterKeybindings(r *keybinding.Registry) {
	r.Register("tools.count", key.NewBinding(key.WithKeys("c")))
}

func TestContributeMsgAddsBarEntryAndKeybinding(t *testing.T) {
	h := newTestHarness(t)
	ran := 0
	h.Send(ContributeMsg{Contribution: toolsContribution{ran: &ran}})
	m := h.Model()
	if m.bar.Index("tools") < 0 {
		t.Fatalf("expected tools entry after contribution")
	}
	h.Keys("c")
	if ran != 1 || m.infoMsg != "counted" {
		t.Fatalf("expected keybinding to run the command, ran=%d info=%q", ran, m.infoMsg)
	}

	h.Send(ContributeMsg{Contribution: toolsContribution{ran: &ran}})
	if !strings.Contains(m.errMsg, "already registered") {
		t.Fatalf("expected duplicate contribution error, got %q", m.errMsg)
	}
}

func TestBackendSessionsPopulateSwitchSubmenu(t *testing.T) {
	h := newTestHarness(t)
	m := h.Model()
	h.Send(backendEventMsg{event: backend.Event{
		Kind:     backend.KindSessions,
		Sessions: []tmux.Session{{Name: "main", Attached: true}, {Name: "scratch"}},
	}})
	m.bar.Open(m.bar.Index("session"))
	if got := itemLabels(m.bar.Active().Items()); got != "New Session,Switch To,-,Detach" {
		t.Fatalf("unexpected session menu %q", got)
	}
	h.Keys("down", "right")
	child := m.bar.Active().Submenu()
	if child == nil || !child.IsOpen() {
		t.Fatalf("expected switch submenu open")
	}
	items := child.Items()
	if len(items) != 2 || !items[0].Toggled || items[1].Label != "scratch" {
		t.Fatalf("unexpected switch items %#v", items)
	}
	h.Keys("left")
	if child.IsOpen() || !m.bar.IsOpen() {
		t.Fatalf("expected left to close only the submenu")
	}

	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindSessions, Err: errors.New("no server")}})
	if m.sessions.Err() == nil {
		t.Fatalf("expected backend error stored")
	}
}

func TestCommandErrorShowsInStatus(t *testing.T) {
	h := newTestHarness(t)
	h.Send(command.Result{ID: "x", Err: errors.New("boom")})
	if !strings.Contains(h.View(), "Error: boom") {
		t.Fatalf("expected error in view:\n%s", h.View())
	}
	h.Send(command.Result{ID: "y", Info: "done"})
	if strings.Contains(h.View(), "boom") || !strings.Contains(h.View(), "done") {
		t.Fatalf("expected info to replace error:\n%s", h.View())
	}
}

func TestQuitKeyReturnsQuit(t *testing.T) {
	h := newTestHarness(t)
	_, cmd := h.Model().Update(keyMsg("ctrl+q"))
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if !containsQuit(cmd()) {
		t.Fatalf("expected quit message")
	}
}

func containsQuit(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil && containsQuit(c()) {
				return true
			}
		}
	}
	return false
}
