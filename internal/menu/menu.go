package menu

import "strings"

// Kind discriminates the node variants of the menu model.
type Kind int

const (
	KindAction Kind = iota
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Node is an entry in the menu model. Composite nodes own their children in
// insertion order; action nodes reference a command by id.
type Node struct {
	Kind      Kind
	ID        string
	Label     string
	CommandID string
	Submenu   bool
	Children  []*Node

	// parent is a non-owning back reference maintained by Add and Remove.
	parent *Node
}

// NewAction returns a leaf node that renders the given command.
func NewAction(id, commandID, label string) *Node {
	if id == "" {
		id = commandID
	}
	return &Node{Kind: KindAction, ID: id, CommandID: commandID, Label: label}
}

// NewGroup returns a composite whose children are inlined into the parent.
func NewGroup(id string) *Node {
	return &Node{Kind: KindComposite, ID: id}
}

// NewSubmenu returns a composite whose children render as a nested menu.
func NewSubmenu(id, label string) *Node {
	return &Node{Kind: KindComposite, ID: id, Label: label, Submenu: true}
}

// IsComposite reports whether the node can own children.
func (n *Node) IsComposite() bool {
	return n != nil && n.Kind == KindComposite
}

// Parent returns the composite holding n, or nil for a root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Add appends child to n. When a child with the same id already exists the
// existing node is returned instead; a submenu registration promotes an
// existing group in place so earlier contributions stay attached.
func (n *Node) Add(child *Node) *Node {
	if n == nil || child == nil || n.Kind != KindComposite {
		return nil
	}
	if existing, ok := n.Child(child.ID); ok {
		if existing.Kind == KindComposite && child.Kind == KindComposite && child.Submenu {
			existing.Submenu = true
			if child.Label != "" {
				existing.Label = child.Label
			}
		}
		return existing
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// Remove detaches the child with the given id.
func (n *Node) Remove(id string) bool {
	if n == nil {
		return false
	}
	for i, child := range n.Children {
		if child.ID != id {
			continue
		}
		child.parent = nil
		n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
		return true
	}
	return false
}

// Child looks up a direct child by id.
func (n *Node) Child(id string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, child := range n.Children {
		if child.ID == id {
			return child, true
		}
	}
	return nil, false
}

// Walk visits n and its descendants depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Path identifies a composite in the registry by its ordered segments.
type Path []string

var (
	MainMenu    = Path{"menubar"}
	ContextMenu = Path{"context"}
)

// Append returns a new path with extra segments.
func (p Path) Append(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	return strings.Join(parts, " ")
}
