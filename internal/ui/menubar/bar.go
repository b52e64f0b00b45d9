package menubar

import (
	"strings"

	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/theme"
	"github.com/atomicstack/tmux-menubar/internal/ui/menuview"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Bar owns one dropdown per top-level composite of the main menu. Entries are
// rendered with forced visibility and re-projected every time they open.
type Bar struct {
	registry  *menu.Registry
	path      menu.Path
	projector menu.Projector
	focus     menuview.FocusTracker

	entries []*menuview.View
	active  int
	open    bool
}

// New builds a bar over path. The projector's visibility is forced.
func New(registry *menu.Registry, path menu.Path, projector menu.Projector, focus menuview.FocusTracker) *Bar {
	projector.Snapshotter.Visibility = menu.VisibilityForced
	b := &Bar{
		registry:  registry,
		path:      path,
		projector: projector,
		focus:     focus,
	}
	b.Refresh()
	return b
}

// Refresh re-syncs entries with the model. Entries whose projection is empty
// are hidden; views of surviving entries are reused.
func (b *Bar) Refresh() {
	root := b.registry.GetMenu(b.path)
	existing := make(map[*menu.Node]*menuview.View, len(b.entries))
	for _, view := range b.entries {
		existing[view.Node()] = view
	}
	activeID := ""
	if view := b.Active(); view != nil {
		activeID = view.ID()
	}

	var entries []*menuview.View
	var ids []string
	if root != nil {
		for _, child := range root.Children {
			if !child.IsComposite() || len(b.projector.Render(child)) == 0 {
				continue
			}
			view, ok := existing[child]
			if ok {
				delete(existing, child)
			} else {
				view = menuview.New(child.ID, child, b.projector, b.focus)
				view.Kind = menuview.KindMenuBar
			}
			entries = append(entries, view)
			ids = append(ids, child.ID)
		}
	}
	for _, stale := range existing {
		stale.Dispose()
	}
	b.entries = entries
	b.active = 0
	for i, view := range entries {
		if view.ID() == activeID {
			b.active = i
		}
	}
	if b.open {
		if view := b.Active(); view == nil || !view.IsOpen() {
			b.open = false
		}
	}
	events.Menu.BarRefresh(ids)
}

// Entries returns the visible top-level views in model order.
func (b *Bar) Entries() []*menuview.View { return b.entries }

// Active returns the highlighted entry, or nil when the bar is empty.
func (b *Bar) Active() *menuview.View {
	if b.active < 0 || b.active >= len(b.entries) {
		return nil
	}
	return b.entries[b.active]
}

// IsOpen reports whether a dropdown of the bar is showing.
func (b *Bar) IsOpen() bool { return b.open }

// Index returns the position of the entry with id, or -1.
func (b *Bar) Index(id string) int {
	for i, view := range b.entries {
		if view.ID() == id {
			return i
		}
	}
	return -1
}

// Open shows entry i. The previously open entry is closed first so only the
// newly active entry runs its about-to-show hooks.
func (b *Bar) Open(i int) bool {
	if i < 0 || i >= len(b.entries) {
		return false
	}
	if b.open && b.active == i {
		return false
	}
	prev := b.Active()
	from := ""
	if prev != nil {
		from = prev.ID()
		if b.open {
			prev.Close(events.CloseSwitch)
		}
	}
	b.active = i
	next := b.entries[i]
	events.Menu.BarSelect(from, next.ID())
	b.open = next.Open(b.Offset(i), 1)
	return b.open
}

// Next opens the entry right of the active one, wrapping around.
func (b *Bar) Next() bool { return b.step(1) }

// Prev opens the entry left of the active one, wrapping around.
func (b *Bar) Prev() bool { return b.step(-1) }

func (b *Bar) step(dir int) bool {
	n := len(b.entries)
	if n == 0 {
		return false
	}
	return b.Open((b.active + dir + n) % n)
}

// Close dismisses the open dropdown.
func (b *Bar) Close(reason events.CloseReason) bool {
	if !b.open {
		return false
	}
	b.open = false
	if view := b.Active(); view != nil {
		return view.Close(reason)
	}
	return false
}

// Offset returns the column where entry i starts.
func (b *Bar) Offset(i int) int {
	styles := theme.Default()
	x := 0
	for j := 0; j < i && j < len(b.entries); j++ {
		x += lipgloss.Width(entryStyle(styles, false).Render(b.entries[j].Title()))
	}
	return x
}

func entryStyle(styles *theme.Styles, active bool) *lipgloss.Style {
	if active && styles.BarEntryActive != nil {
		return styles.BarEntryActive
	}
	if styles.BarEntry != nil {
		return styles.BarEntry
	}
	plain := lipgloss.NewStyle()
	return &plain
}

// Render draws the bar on a single line of the given width.
func (b *Bar) Render(styles *theme.Styles, width int) string {
	var sb strings.Builder
	for i, view := range b.entries {
		sb.WriteString(entryStyle(styles, b.open && i == b.active).Render(view.Title()))
	}
	line := sb.String()
	if width <= 0 {
		return line
	}
	if lipgloss.Width(line) > width {
		return truncate.String(line, uint(width))
	}
	if pad := width - lipgloss.Width(line); pad > 0 && styles.Bar != nil {
		line += styles.Bar.Render(strings.Repeat(" ", pad))
	}
	return line
}
