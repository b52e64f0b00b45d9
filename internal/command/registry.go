package command

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-menubar/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrCommandDisabled  = errors.New("command disabled")
	ErrDuplicateCommand = errors.New("command already registered")
)

// Command describes an executable command.
type Command struct {
	ID    string
	Label string
	Icon  string
}

// Context is the application state handlers consult at query time.
type Context struct {
	Focused    string
	SocketPath string
	InTmux     bool
}

// Handler implements a command. Nil predicates mean enabled, visible and not
// toggled.
type Handler struct {
	Execute   func(Context) tea.Cmd
	IsEnabled func(Context) bool
	IsVisible func(Context) bool
	IsToggled func(Context) bool
}

// Registry holds commands and their handlers. The first registered handler of
// a command is the one that answers queries and executes.
type Registry struct {
	commands map[string]Command
	order    []string
	handlers map[string][]Handler
	context  func() Context
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		handlers: make(map[string][]Handler),
	}
}

// SetContext installs the provider consulted on every query.
func (r *Registry) SetContext(fn func() Context) {
	r.context = fn
}

// Context returns the current application context.
func (r *Registry) Context() Context {
	if r.context == nil {
		return Context{}
	}
	return r.context()
}

// RegisterCommand adds cmd with optional handlers.
func (r *Registry) RegisterCommand(cmd Command, handlers ...Handler) error {
	if cmd.ID == "" {
		return fmt.Errorf("register command: %w", ErrUnknownCommand)
	}
	if _, exists := r.commands[cmd.ID]; exists {
		return fmt.Errorf("register %s: %w", cmd.ID, ErrDuplicateCommand)
	}
	r.commands[cmd.ID] = cmd
	r.order = append(r.order, cmd.ID)
	r.handlers[cmd.ID] = append(r.handlers[cmd.ID], handlers...)
	return nil
}

// RegisterHandler appends a handler to an existing command.
func (r *Registry) RegisterHandler(id string, h Handler) error {
	if _, ok := r.commands[id]; !ok {
		return fmt.Errorf("register handler %s: %w", id, ErrUnknownCommand)
	}
	r.handlers[id] = append(r.handlers[id], h)
	return nil
}

// UnregisterCommand drops a command and its handlers.
func (r *Registry) UnregisterCommand(id string) bool {
	if _, ok := r.commands[id]; !ok {
		return false
	}
	delete(r.commands, id)
	delete(r.handlers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Command implements menu.Commands.
func (r *Registry) Command(id string) (menu.CommandInfo, bool) {
	cmd, ok := r.commands[id]
	if !ok {
		return menu.CommandInfo{}, false
	}
	return menu.CommandInfo{ID: cmd.ID, Label: cmd.Label, Icon: cmd.Icon}, true
}

// Commands lists registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.commands[id])
	}
	return out
}

func (r *Registry) handler(id string) (Handler, bool) {
	handlers := r.handlers[id]
	if len(handlers) == 0 {
		return Handler{}, false
	}
	return handlers[0], true
}

// IsEnabled reports whether the command can execute in the current context.
func (r *Registry) IsEnabled(id string) bool {
	h, ok := r.handler(id)
	if !ok || h.Execute == nil {
		return false
	}
	if h.IsEnabled == nil {
		return true
	}
	return h.IsEnabled(r.Context())
}

// IsVisible reports whether context menus should show the command.
func (r *Registry) IsVisible(id string) bool {
	h, ok := r.handler(id)
	if !ok {
		return false
	}
	if h.IsVisible == nil {
		return true
	}
	return h.IsVisible(r.Context())
}

// IsToggled reports the command's checked state.
func (r *Registry) IsToggled(id string) bool {
	h, ok := r.handler(id)
	if !ok || h.IsToggled == nil {
		return false
	}
	return h.IsToggled(r.Context())
}
