package contrib

import (
	"github.com/atomicstack/tmux-menubar/internal/command"
	"github.com/atomicstack/tmux-menubar/internal/keybinding"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/tmux"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	SessionMenuPath = menu.MainMenu.Append("session")
	WindowMenuPath  = menu.MainMenu.Append("window")
	PaneMenuPath    = menu.MainMenu.Append("pane")
	SwitchMenuPath  = SessionMenuPath.Append("switch", "sessions")
)

const (
	CmdNewSession      = "tmux.session.new"
	CmdDetach          = "tmux.session.detach"
	CmdNewWindow       = "tmux.window.new"
	CmdNextWindow      = "tmux.window.next"
	CmdPreviousWindow  = "tmux.window.previous"
	CmdKillWindow      = "tmux.window.kill"
	CmdSplitHorizontal = "tmux.pane.split-horizontal"
	CmdSplitVertical   = "tmux.pane.split-vertical"
	CmdZoomPane        = "tmux.pane.zoom"
	CmdKillPane        = "tmux.pane.kill"
)

type tmuxCommand struct {
	id    string
	label string
	run   func(t Tmux, socketPath string) error
}

func execArgs(args ...string) func(Tmux, string) error {
	return func(t Tmux, socketPath string) error {
		return t.exec(socketPath, args...)
	}
}

var tmuxCommands = []tmuxCommand{
	{CmdNewSession, "New Session", func(t Tmux, socketPath string) error { return t.newSession(socketPath) }},
	{CmdDetach, "Detach", execArgs("detach-client")},
	{CmdNewWindow, "New Window", execArgs("new-window")},
	{CmdNextWindow, "Next Window", execArgs("next-window")},
	{CmdPreviousWindow, "Previous Window", execArgs("previous-window")},
	{CmdKillWindow, "Kill Window", execArgs("kill-window")},
	{CmdSplitHorizontal, "Split Horizontally", execArgs("split-window", "-h")},
	{CmdSplitVertical, "Split Vertically", execArgs("split-window", "-v")},
	{CmdZoomPane, "Zoom Pane", execArgs("resize-pane", "-Z")},
	{CmdKillPane, "Kill Pane", execArgs("kill-pane")},
}

// Tmux contributes the Session, Window and Pane menus. Its commands are
// enabled only while the tmux server socket is reachable.
type Tmux struct {
	// Reachable overrides tmux.Reachable, mainly for tests.
	Reachable func(socketPath string) bool
	// Run overrides tmux.Run for window and pane commands.
	Run func(socketPath string, args ...string) error
	// NewSession overrides tmux.NewSession.
	NewSession func(socketPath, name string) error
}

func (t Tmux) Name() string { return "tmux" }

func (t Tmux) reachable(ctx command.Context) bool {
	if t.Reachable != nil {
		return t.Reachable(ctx.SocketPath)
	}
	return tmux.Reachable(ctx.SocketPath)
}

func (t Tmux) exec(socketPath string, args ...string) error {
	if t.Run != nil {
		return t.Run(socketPath, args...)
	}
	return tmux.Run(socketPath, args...)
}

func (t Tmux) newSession(socketPath string) error {
	if t.NewSession != nil {
		return t.NewSession(socketPath, "")
	}
	return tmux.NewSession(socketPath, "")
}

func (t Tmux) RegisterCommands(r *command.Registry) error {
	for _, tc := range tmuxCommands {
		tc := tc
		err := r.RegisterCommand(command.Command{ID: tc.id, Label: tc.label}, command.Handler{
			Execute: func(ctx command.Context) tea.Cmd {
				return runTmux(ctx.SocketPath, tc.id, tc.label, func(socketPath string) error {
					return tc.run(t, socketPath)
				})
			},
			IsEnabled: t.reachable,
			IsVisible: t.reachable,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func runTmux(socketPath, id, label string, run func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := run(socketPath); err != nil {
			return command.Result{ID: id, Err: err}
		}
		return command.Result{ID: id, Info: label}
	}
}

func (t Tmux) RegisterMenus(r *menu.Registry) {
	r.RegisterSubmenu(SessionMenuPath, "Session")
	r.RegisterAction(SessionMenuPath.Append("create"), menu.ActionSpec{CommandID: CmdNewSession})
	r.RegisterSubmenu(SessionMenuPath.Append("switch"), "Switch To")
	r.RegisterAction(SessionMenuPath.Append("client"), menu.ActionSpec{CommandID: CmdDetach})

	r.RegisterSubmenu(WindowMenuPath, "Window")
	nav := WindowMenuPath.Append("navigate")
	r.RegisterAction(nav, menu.ActionSpec{CommandID: CmdNextWindow})
	r.RegisterAction(nav, menu.ActionSpec{CommandID: CmdPreviousWindow})
	manage := WindowMenuPath.Append("manage")
	r.RegisterAction(manage, menu.ActionSpec{CommandID: CmdNewWindow})
	r.RegisterAction(manage, menu.ActionSpec{CommandID: CmdKillWindow})

	r.RegisterSubmenu(PaneMenuPath, "Pane")
	split := PaneMenuPath.Append("split")
	r.RegisterAction(split, menu.ActionSpec{CommandID: CmdSplitHorizontal})
	r.RegisterAction(split, menu.ActionSpec{CommandID: CmdSplitVertical})
	r.RegisterAction(PaneMenuPath.Append("view"), menu.ActionSpec{CommandID: CmdZoomPane})
	r.RegisterAction(PaneMenuPath.Append("manage"), menu.ActionSpec{CommandID: CmdKillPane})

	ctx := menu.ContextMenu.Append("tmux")
	r.RegisterAction(ctx.Append("pane"), menu.ActionSpec{CommandID: CmdSplitHorizontal})
	r.RegisterAction(ctx.Append("pane"), menu.ActionSpec{CommandID: CmdSplitVertical})
	r.RegisterAction(ctx.Append("pane"), menu.ActionSpec{CommandID: CmdZoomPane})
	r.RegisterAction(ctx.Append("window"), menu.ActionSpec{CommandID: CmdNewWindow})
	r.RegisterAction(ctx.Append("window"), menu.ActionSpec{CommandID: CmdNextWindow})
}

func (t Tmux) RegisterKeybindings(r *keybinding.Registry) {
	r.Register(CmdNewWindow, key.NewBinding(key.WithKeys("ctrl+t")))
	r.Register(CmdNextWindow, key.NewBinding(key.WithKeys("alt+right")))
	r.Register(CmdNextWindow, key.NewBinding(key.WithKeys("alt+l")))
	r.Register(CmdPreviousWindow, key.NewBinding(key.WithKeys("alt+left")))
	r.Register(CmdZoomPane, key.NewBinding(key.WithKeys("alt+z")))
}
