package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-menubar/internal/command"
	"github.com/atomicstack/tmux-menubar/internal/keybinding"
	"github.com/atomicstack/tmux-menubar/internal/logging"
	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/opener"
	"github.com/atomicstack/tmux-menubar/internal/shell"
	"github.com/atomicstack/tmux-menubar/internal/widget"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	CmdPalette      = "app.palette"
	CmdQuit         = "app.quit"
	CmdToggleFooter = "app.footer.toggle"
	CmdNextWidget   = "widget.next"
	CmdCloseWidget  = "widget.close"
	CmdAbout        = "help.about"
	CmdKeybindings  = "help.keybindings"
)

const (
	uriAbout       = "about:tmux-menubar"
	uriKeybindings = "keys:reference"
)

var (
	FileMenuPath   = menu.MainMenu.Append("file")
	ViewMenuPath   = menu.MainMenu.Append("view")
	HelpMenuPath   = menu.MainMenu.Append("help")
	AppContextPath = menu.ContextMenu.Append("app")
)

// builtinBindings are keys handled by the model itself rather than by a
// command.
var builtinBindings = []widget.Binding{
	{Keys: "F10, Alt+M", Label: "Open the menu bar"},
	{Keys: "M, right click", Label: "Open the context menu"},
	{Keys: "Left/Right", Label: "Switch menus or open a submenu"},
	{Keys: "Esc", Label: "Close the innermost menu"},
}

type openPaletteMsg struct{}

type toggleFooterMsg struct{}

type closeWidgetMsg struct {
	id string
}

type focusNextWidgetMsg struct{}

type openWidgetRequestMsg struct {
	uri string
}

type widgetOpenedMsg struct {
	uri string
	id  string
	err error
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// appContribution provides the File and View menus. Its predicates read model
// state, so it only runs against the model's own registries.
type appContribution struct {
	m *Model
}

func (appContribution) Name() string { return "app" }

func (c appContribution) RegisterCommands(r *command.Registry) error {
	m := c.m
	hasFocus := func(ctx command.Context) bool { return ctx.Focused != "" }
	cmds := []struct {
		cmd     command.Command
		handler command.Handler
	}{
		{command.Command{ID: CmdPalette, Label: "Command Palette"}, command.Handler{
			Execute: func(command.Context) tea.Cmd { return msgCmd(openPaletteMsg{}) },
		}},
		{command.Command{ID: CmdQuit, Label: "Quit"}, command.Handler{
			Execute: func(command.Context) tea.Cmd { return tea.Quit },
		}},
		{command.Command{ID: CmdToggleFooter, Label: "Show Footer"}, command.Handler{
			Execute:   func(command.Context) tea.Cmd { return msgCmd(toggleFooterMsg{}) },
			IsToggled: func(command.Context) bool { return m.showFooter },
		}},
		{command.Command{ID: CmdNextWidget, Label: "Next Panel"}, command.Handler{
			Execute:   func(command.Context) tea.Cmd { return msgCmd(focusNextWidgetMsg{}) },
			IsEnabled: func(command.Context) bool { return len(m.shell.Widgets()) > 0 },
		}},
		{command.Command{ID: CmdCloseWidget, Label: "Close Panel"}, command.Handler{
			Execute: func(ctx command.Context) tea.Cmd {
				return msgCmd(closeWidgetMsg{id: ctx.Focused})
			},
			IsEnabled: hasFocus,
			IsVisible: hasFocus,
		}},
	}
	for _, c := range cmds {
		if err := r.RegisterCommand(c.cmd, c.handler); err != nil {
			return err
		}
	}
	return nil
}

func (appContribution) RegisterMenus(r *menu.Registry) {
	r.RegisterSubmenu(FileMenuPath, "File")
	r.RegisterAction(FileMenuPath.Append("navigate"), menu.ActionSpec{CommandID: CmdPalette})
	r.RegisterAction(FileMenuPath.Append("exit"), menu.ActionSpec{CommandID: CmdQuit})

	r.RegisterSubmenu(ViewMenuPath, "View")
	r.RegisterAction(ViewMenuPath.Append("layout"), menu.ActionSpec{CommandID: CmdToggleFooter})
	panels := ViewMenuPath.Append("panels")
	r.RegisterAction(panels, menu.ActionSpec{CommandID: CmdNextWidget})
	r.RegisterAction(panels, menu.ActionSpec{CommandID: CmdCloseWidget})

	r.RegisterAction(AppContextPath, menu.ActionSpec{CommandID: CmdCloseWidget})
	r.RegisterAction(AppContextPath, menu.ActionSpec{CommandID: CmdPalette})
}

func (appContribution) RegisterKeybindings(r *keybinding.Registry) {
	r.Register(CmdPalette, key.NewBinding(key.WithKeys("ctrl+p")))
	r.Register(CmdQuit, key.NewBinding(key.WithKeys("ctrl+q")))
	r.Register(CmdNextWidget, key.NewBinding(key.WithKeys("tab")))
	r.Register(CmdCloseWidget, key.NewBinding(key.WithKeys("ctrl+w")))
}

// helpContribution opens the reference panels through the opener.
type helpContribution struct{}

func (helpContribution) Name() string { return "help" }

func (helpContribution) RegisterCommands(r *command.Registry) error {
	open := func(uri string) command.Handler {
		return command.Handler{
			Execute: func(command.Context) tea.Cmd { return msgCmd(openWidgetRequestMsg{uri: uri}) },
		}
	}
	if err := r.RegisterCommand(command.Command{ID: CmdAbout, Label: "About"}, open(uriAbout)); err != nil {
		return err
	}
	return r.RegisterCommand(command.Command{ID: CmdKeybindings, Label: "Keybindings"}, open(uriKeybindings))
}

func (helpContribution) RegisterMenus(r *menu.Registry) {
	r.RegisterSubmenu(HelpMenuPath, "Help")
	r.RegisterAction(HelpMenuPath.Append("reference"), menu.ActionSpec{CommandID: CmdKeybindings})
	r.RegisterAction(HelpMenuPath.Append("about"), menu.ActionSpec{CommandID: CmdAbout})
}

func (helpContribution) RegisterKeybindings(r *keybinding.Registry) {
	r.Register(CmdKeybindings, key.NewBinding(key.WithKeys("f1")))
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if res.Err != nil {
		logging.Errorf(res.ID, res.Err)
		events.Action.Error(res.Err)
		m.errMsg = res.Err.Error()
		m.infoMsg = ""
		return nil
	}
	m.errMsg = ""
	m.infoMsg = res.Info
	if res.Info != "" {
		events.Action.Success(res.Info)
	}
	return nil
}

// handleOpenWidgetRequestMsg runs the opener off the UI goroutine. Widget
// creation may block; the shell it places into is safe for concurrent use.
func (m *Model) handleOpenWidgetRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(openWidgetRequestMsg)
	if !ok {
		return nil
	}
	ctx := m.ctx
	svc := m.opener
	return func() tea.Msg {
		w, err := svc.Open(ctx, req.uri, opener.Options{
			Mode:      opener.ModeActivate,
			Placement: shell.Placement{Area: shell.AreaMain},
		})
		if err != nil {
			return widgetOpenedMsg{uri: req.uri, err: err}
		}
		return widgetOpenedMsg{uri: req.uri, id: w.ID()}
	}
}

func (m *Model) handleWidgetOpenedMsg(msg tea.Msg) tea.Cmd {
	opened, ok := msg.(widgetOpenedMsg)
	if !ok {
		return nil
	}
	if opened.err != nil {
		logging.Errorf(fmt.Sprintf("open %s", opened.uri), opened.err)
		m.errMsg = opened.err.Error()
		return nil
	}
	m.errMsg = ""
	return nil
}

func (m *Model) handleOpenPaletteMsg(tea.Msg) tea.Cmd {
	return m.openPalette()
}

func (m *Model) handleToggleFooterMsg(tea.Msg) tea.Cmd {
	m.showFooter = !m.showFooter
	return nil
}

func (m *Model) handleCloseWidgetMsg(msg tea.Msg) tea.Cmd {
	closeMsg, ok := msg.(closeWidgetMsg)
	if !ok || closeMsg.id == "" {
		return nil
	}
	if !m.shell.CloseWidget(closeMsg.id) {
		return nil
	}
	if w, ok := m.shell.Revealed(shell.AreaMain); ok {
		m.shell.ActivateWidget(w.ID())
	}
	return nil
}

func (m *Model) handleFocusNextWidgetMsg(tea.Msg) tea.Cmd {
	widgets := m.shell.Widgets()
	if len(widgets) == 0 {
		return nil
	}
	next := 0
	if active, ok := m.shell.Active(); ok {
		for i, w := range widgets {
			if w.ID() == active.ID() {
				next = (i + 1) % len(widgets)
				break
			}
		}
	}
	m.shell.ActivateWidget(widgets[next].ID())
	return nil
}
