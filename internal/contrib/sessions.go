package contrib

import (
	"github.com/atomicstack/tmux-menubar/internal/command"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/tmux"
	tea "github.com/charmbracelet/bubbletea"
)

const switchCommandPrefix = "tmux.session.switch:"

// SessionMenu keeps Session > Switch To in step with the tmux server. Sync
// must run on the goroutine that owns the registries.
type SessionMenu struct {
	menus    *menu.Registry
	commands *command.Registry
	switchTo func(socketPath, target string) error

	names    []string
	attached map[string]bool
}

// NewSessionMenu returns a syncer writing into the given registries.
func NewSessionMenu(menus *menu.Registry, commands *command.Registry) *SessionMenu {
	return &SessionMenu{
		menus:    menus,
		commands: commands,
		switchTo: tmux.SwitchClient,
		attached: make(map[string]bool),
	}
}

// SwitchCommandID is the command id of the switch action for session.
func SwitchCommandID(session string) string {
	return switchCommandPrefix + session
}

// Sync replaces the switch actions with one per session. It reports whether
// the menu changed.
func (s *SessionMenu) Sync(sessions []tmux.Session) bool {
	names := make([]string, len(sessions))
	attached := make(map[string]bool, len(sessions))
	for i, sess := range sessions {
		names[i] = sess.Name
		attached[sess.Name] = sess.Attached
	}
	if equalNames(names, s.names) && equalFlags(attached, s.attached) {
		return false
	}
	for _, name := range s.names {
		id := SwitchCommandID(name)
		s.menus.UnregisterAction(SwitchMenuPath, id)
		s.commands.UnregisterCommand(id)
	}
	for _, name := range names {
		name := name
		id := SwitchCommandID(name)
		err := s.commands.RegisterCommand(command.Command{ID: id, Label: name}, command.Handler{
			Execute: func(ctx command.Context) tea.Cmd {
				return func() tea.Msg {
					if err := s.switchTo(ctx.SocketPath, name); err != nil {
						return command.Result{ID: id, Err: err}
					}
					return command.Result{ID: id, Info: "switched to " + name}
				}
			},
			IsToggled: func(command.Context) bool { return s.attached[name] },
		})
		if err != nil {
			continue
		}
		s.menus.RegisterAction(SwitchMenuPath, menu.ActionSpec{CommandID: id})
	}
	s.names = names
	s.attached = attached
	return true
}

// Names returns the sessions currently listed.
func (s *SessionMenu) Names() []string {
	return append([]string(nil), s.names...)
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFlags(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
