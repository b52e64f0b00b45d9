package menu

// ActionSpec describes an action contributed to a menu path.
type ActionSpec struct {
	ID        string
	CommandID string
	Label     string
}

// Registry resolves menu paths to composite nodes. It is not safe for
// concurrent use; callers serialise mutation and projection on one goroutine.
type Registry struct {
	roots map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[string]*Node)}
}

// GetMenu returns the composite at path, creating missing segments as groups.
func (r *Registry) GetMenu(path Path) *Node {
	if len(path) == 0 {
		return nil
	}
	ensure := func(id string) *Node {
		if node, ok := r.roots[id]; ok {
			return node
		}
		node := NewGroup(id)
		r.roots[id] = node
		return node
	}
	node := ensure(path[0])
	for _, segment := range path[1:] {
		next, ok := node.Child(segment)
		if !ok {
			next = node.Add(NewGroup(segment))
		}
		if next.Kind != KindComposite {
			// An action already owns this id; composites cannot live beneath it.
			return nil
		}
		node = next
	}
	return node
}

// Find resolves path without creating anything.
func (r *Registry) Find(path Path) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	node, ok := r.roots[path[0]]
	if !ok {
		return nil, false
	}
	for _, segment := range path[1:] {
		node, ok = node.Child(segment)
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// RegisterSubmenu marks the composite at path as a submenu labelled label.
func (r *Registry) RegisterSubmenu(path Path, label string) *Node {
	node := r.GetMenu(path)
	if node == nil {
		return nil
	}
	node.Submenu = true
	if label != "" {
		node.Label = label
	} else if node.Label == "" {
		node.Label = prettyLabel(node.ID)
	}
	return node
}

// RegisterAction appends an action under the composite at path.
func (r *Registry) RegisterAction(path Path, spec ActionSpec) *Node {
	parent := r.GetMenu(path)
	if parent == nil {
		return nil
	}
	return parent.Add(NewAction(spec.ID, spec.CommandID, spec.Label))
}

// UnregisterAction removes the action for commandID from the composite at path.
func (r *Registry) UnregisterAction(path Path, commandID string) bool {
	parent, ok := r.Find(path)
	if !ok {
		return false
	}
	for _, child := range parent.Children {
		if child.Kind == KindAction && child.CommandID == commandID {
			return parent.Remove(child.ID)
		}
	}
	return false
}
