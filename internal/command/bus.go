package command

import (
	"fmt"

	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Result communicates the outcome of executing a command.
type Result struct {
	ID   string
	Info string
	Err  error
}

// Bus coordinates the execution of commands.
type Bus struct {
	registry *Registry
}

// NewBus returns a bus executing commands from registry.
func NewBus(registry *Registry) *Bus {
	return &Bus{registry: registry}
}

// Execute resolves id and wraps its handler into a Bubble Tea command while
// emitting trace logs. State is checked when Execute is called, not when the
// returned command runs.
func (b *Bus) Execute(id string) tea.Cmd {
	cmd, ok := b.registry.commands[id]
	if !ok {
		events.Command.Skip(id, "unknown")
		return resultCmd(Result{ID: id, Err: fmt.Errorf("%s: %w", id, ErrUnknownCommand)})
	}
	if !b.registry.IsEnabled(id) {
		events.Command.Skip(id, "disabled")
		return resultCmd(Result{ID: id, Err: fmt.Errorf("%s: %w", id, ErrCommandDisabled)})
	}
	h, _ := b.registry.handler(id)
	events.Command.Queue(id, cmd.Label)
	next := h.Execute(b.registry.Context())
	if next == nil {
		events.Command.NoOp(id, cmd.Label)
		return nil
	}
	return func() tea.Msg {
		msg := next()
		events.Command.Result(id, cmd.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

func resultCmd(res Result) tea.Cmd {
	return func() tea.Msg { return res }
}
