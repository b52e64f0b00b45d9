package contrib

import (
	"fmt"

	"github.com/atomicstack/tmux-menubar/internal/command"
	"github.com/atomicstack/tmux-menubar/internal/keybinding"
	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/menu"
)

// Registries bundles the registries contributions write into.
type Registries struct {
	Menus       *menu.Registry
	Commands    *command.Registry
	Keybindings *keybinding.Registry
}

// Contribution adds commands, menu entries and keybindings. Contributions
// know nothing about each other; they only share menu paths.
type Contribution interface {
	Name() string
	RegisterCommands(*command.Registry) error
	RegisterMenus(*menu.Registry)
	RegisterKeybindings(*keybinding.Registry)
}

// Apply runs every contribution in order. Commands are registered before
// menus so a contribution may reference its own commands.
func Apply(r Registries, contribs ...Contribution) error {
	for _, c := range contribs {
		err := c.RegisterCommands(r.Commands)
		events.App.Contribution(c.Name(), err)
		if err != nil {
			return fmt.Errorf("contribution %s: %w", c.Name(), err)
		}
		c.RegisterMenus(r.Menus)
		if r.Keybindings != nil {
			c.RegisterKeybindings(r.Keybindings)
		}
	}
	return nil
}
