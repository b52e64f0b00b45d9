package menu

import "github.com/charmbracelet/bubbles/key"

// CommandInfo is the presentation data of a resolved command.
type CommandInfo struct {
	ID    string
	Label string
	Icon  string
}

// Commands is the command collaborator queried while building a snapshot.
type Commands interface {
	Command(id string) (CommandInfo, bool)
	IsEnabled(id string) bool
	IsVisible(id string) bool
	IsToggled(id string) bool
}

// Keybindings is the keybinding collaborator queried for accelerators.
type Keybindings interface {
	KeybindingsForCommand(id string) []key.Binding
	Accelerator(b key.Binding) string
}

// Visibility selects how a snapshot treats contextual visibility.
type Visibility int

const (
	// VisibilityDynamic honours the command's visible predicate (context menus).
	VisibilityDynamic Visibility = iota
	// VisibilityForced shows every resolved command (menu bar).
	VisibilityForced
)

// CommandState is the render-time state of one command.
type CommandState struct {
	Label       string
	Icon        string
	Enabled     bool
	Visible     bool
	Toggled     bool
	Accelerator string
}

// Snapshot maps command ids to their state at one instant. It is never
// mutated after Build returns.
type Snapshot struct {
	states map[string]CommandState
}

// Lookup returns the state for a command id.
func (s Snapshot) Lookup(id string) (CommandState, bool) {
	state, ok := s.states[id]
	return state, ok
}

// Snapshotter builds snapshots from the external collaborators.
type Snapshotter struct {
	Commands    Commands
	Keybindings Keybindings
	Visibility  Visibility
}

// Build queries every action reachable from root. Actions whose command does
// not resolve are left out of the snapshot.
func (s Snapshotter) Build(root *Node) Snapshot {
	snap := Snapshot{states: make(map[string]CommandState)}
	if root == nil || s.Commands == nil {
		return snap
	}
	root.Walk(func(n *Node) {
		if n.Kind != KindAction || n.CommandID == "" {
			return
		}
		if _, seen := snap.states[n.CommandID]; seen {
			return
		}
		info, ok := s.Commands.Command(n.CommandID)
		if !ok {
			return
		}
		state := CommandState{
			Label:   info.Label,
			Icon:    info.Icon,
			Enabled: s.Commands.IsEnabled(n.CommandID),
			Visible: s.Visibility == VisibilityForced || s.Commands.IsVisible(n.CommandID),
			Toggled: s.Commands.IsToggled(n.CommandID),
		}
		state.Accelerator = s.accelerator(n.CommandID)
		snap.states[n.CommandID] = state
	})
	return snap
}

// accelerator renders only the first binding; further bindings are not shown.
func (s Snapshotter) accelerator(commandID string) string {
	if s.Keybindings == nil {
		return ""
	}
	bindings := s.Keybindings.KeybindingsForCommand(commandID)
	if len(bindings) == 0 {
		return ""
	}
	return s.Keybindings.Accelerator(bindings[0])
}
