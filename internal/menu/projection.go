package menu

// ItemKind discriminates rendered descriptors.
type ItemKind int

const (
	ItemCommand ItemKind = iota
	ItemSubmenu
	ItemSeparator
)

func (k ItemKind) String() string {
	switch k {
	case ItemCommand:
		return "command"
	case ItemSubmenu:
		return "submenu"
	case ItemSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Item is one renderable entry produced by Project. Items are discarded and
// rebuilt every time a menu is shown.
type Item struct {
	Kind        ItemKind
	ID          string
	CommandID   string
	Label       string
	Icon        string
	Accelerator string
	Enabled     bool
	Toggled     bool
	// Node is the submenu's model node, used to re-project it when opened.
	Node     *Node
	Children []Item
}

// Separator returns a separator descriptor.
func Separator() Item {
	return Item{Kind: ItemSeparator}
}

// Project flattens node's children into descriptors. Hidden or unresolved
// actions are dropped, empty composites are pruned transitively and a single
// separator is placed between successive non-empty groups.
func Project(node *Node, snap Snapshot) []Item {
	if node == nil {
		return nil
	}
	var out []Item
	for _, child := range node.Children {
		switch child.Kind {
		case KindAction:
			if item, ok := projectAction(child, snap); ok {
				out = append(out, item)
			}
		case KindComposite:
			if len(child.Children) == 0 {
				continue
			}
			nested := Project(child, snap)
			if len(nested) == 0 {
				continue
			}
			if child.Submenu {
				out = append(out, Item{
					Kind:     ItemSubmenu,
					ID:       child.ID,
					Label:    submenuLabel(child),
					Enabled:  true,
					Node:     child,
					Children: nested,
				})
				continue
			}
			if len(out) > 0 {
				out = append(out, Separator())
			}
			out = append(out, nested...)
		}
	}
	return out
}

func projectAction(n *Node, snap Snapshot) (Item, bool) {
	state, ok := snap.Lookup(n.CommandID)
	if !ok || !state.Visible {
		return Item{}, false
	}
	label := n.Label
	if label == "" {
		label = state.Label
	}
	if label == "" {
		label = n.CommandID
	}
	return Item{
		Kind:        ItemCommand,
		ID:          n.ID,
		CommandID:   n.CommandID,
		Label:       label,
		Icon:        state.Icon,
		Accelerator: state.Accelerator,
		Enabled:     state.Enabled,
		Toggled:     state.Toggled,
	}, true
}

func submenuLabel(n *Node) string {
	if n.Label != "" {
		return n.Label
	}
	return prettyLabel(n.ID)
}

// Projector rebuilds a snapshot and projects a node in one step.
type Projector struct {
	Snapshotter Snapshotter
}

// Render snapshots exactly node's subtree and projects it.
func (p Projector) Render(node *Node) []Item {
	return Project(node, p.Snapshotter.Build(node))
}

// Flatten returns the command descriptors of items in display order,
// descending into submenus. Labels of nested commands are prefixed with the
// submenu labels leading to them, each followed by sep.
func Flatten(items []Item, sep string) []Item {
	return flatten(items, "", sep)
}

func flatten(items []Item, prefix, sep string) []Item {
	var out []Item
	for _, item := range items {
		switch item.Kind {
		case ItemCommand:
			item.Label = prefix + item.Label
			out = append(out, item)
		case ItemSubmenu:
			out = append(out, flatten(item.Children, prefix+item.Label+sep, sep)...)
		}
	}
	return out
}
