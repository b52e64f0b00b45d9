package state

// Entry is one row of a menu or palette list.
type Entry struct {
	ID        string
	Label     string
	Hint      string
	Separator bool
	Disabled  bool
	Toggled   bool
	Submenu   bool
}

// Selectable reports whether the cursor may rest on the entry.
func (e Entry) Selectable() bool {
	return !e.Separator
}

// Level tracks the rows of one open list together with its cursor, viewport
// and optional filter.
type Level struct {
	ID             string
	Title          string
	Items          []Entry
	Full           []Entry
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level and places the cursor on the first selectable row.
func NewLevel(id, title string, items []Entry) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given entry identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id && item.Selectable() {
			return i
		}
	}
	return -1
}

// Current returns the entry under the cursor.
func (l *Level) Current() (Entry, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Entry{}, false
	}
	item := l.Items[l.Cursor]
	if !item.Selectable() {
		return Entry{}, false
	}
	return item, true
}

// UpdateItems replaces the rows, keeping the cursor on the same id when it
// is still present.
func (l *Level) UpdateItems(items []Entry) {
	prevID := ""
	if current, ok := l.Current(); ok {
		prevID = current.ID
	}
	prevOffset := l.ViewportOffset
	l.Full = CloneEntries(items)
	l.applyFilter()
	if idx := l.IndexOf(prevID); idx >= 0 {
		l.Cursor = idx
	} else {
		l.Cursor = l.firstSelectable()
	}
	if len(l.Items) == 0 || prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// CloneEntries produces a shallow copy of the provided entries.
func CloneEntries(items []Entry) []Entry {
	dup := make([]Entry, len(items))
	copy(dup, items)
	return dup
}
