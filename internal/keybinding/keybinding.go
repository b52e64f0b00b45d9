package keybinding

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type entry struct {
	commandID string
	binding   key.Binding
}

// Registry maps commands to key bindings in registration order.
type Registry struct {
	entries []entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register binds b to commandID.
func (r *Registry) Register(commandID string, b key.Binding) {
	r.entries = append(r.entries, entry{commandID: commandID, binding: b})
}

// KeybindingsForCommand returns the bindings of a command in registration order.
func (r *Registry) KeybindingsForCommand(commandID string) []key.Binding {
	var out []key.Binding
	for _, e := range r.entries {
		if e.commandID == commandID {
			out = append(out, e.binding)
		}
	}
	return out
}

// Accelerator implements menu.Keybindings.
func (r *Registry) Accelerator(b key.Binding) string {
	return Accelerator(b)
}

// Match returns the command bound to msg. Disabled bindings never match.
func (r *Registry) Match(msg tea.KeyMsg) (string, bool) {
	for _, e := range r.entries {
		if key.Matches(msg, e.binding) {
			return e.commandID, true
		}
	}
	return "", false
}

// Accelerator renders the display text of a binding: the help key when set,
// otherwise the first key with each "+" segment title-cased.
func Accelerator(b key.Binding) string {
	if help := b.Help().Key; help != "" {
		return help
	}
	keys := b.Keys()
	if len(keys) == 0 {
		return ""
	}
	return formatKey(keys[0])
}

// formatKey title-cases each modifier and the key. A trailing "+" is the
// plus key itself, as in "ctrl++".
func formatKey(k string) string {
	if k == "+" {
		return k
	}
	var parts []string
	if strings.HasSuffix(k, "++") {
		parts = append(strings.Split(strings.TrimSuffix(k, "++"), "+"), "+")
	} else {
		parts = strings.Split(k, "+")
	}
	for i, part := range parts {
		parts[i] = formatKeyPart(part)
	}
	return strings.Join(parts, "+")
}

func formatKeyPart(part string) string {
	switch {
	case part == "" || part == "+":
		return part
	case len(part) == 1:
		return strings.ToUpper(part)
	case part == "pgup":
		return "PgUp"
	case part == "pgdown":
		return "PgDn"
	case part[0] == 'f' && isDigits(part[1:]):
		return strings.ToUpper(part)
	default:
		return strings.ToUpper(part[:1]) + part[1:]
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
