package shell

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/tmux-menubar/internal/ui/menuview"
)

var (
	ErrDuplicateWidget = errors.New("widget already added")
	ErrWidgetDisposed  = errors.New("widget disposed")
)

// Widget is a docked view hosted by the shell.
type Widget interface {
	ID() string
	Title() string
	Render(width, height int) string
	Dispose()
	Disposed() bool
}

// Area is a docking region.
type Area int

const (
	AreaMain Area = iota
	AreaBottom
)

func (a Area) String() string {
	switch a {
	case AreaMain:
		return "main"
	case AreaBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Placement tells the shell where to dock a widget.
type Placement struct {
	Area Area
}

type slot struct {
	widget Widget
	area   Area
}

// Shell tracks docked widgets, which one is revealed in each area and which
// one owns input focus. It is safe for concurrent use.
type Shell struct {
	mu       sync.RWMutex
	slots    []slot
	revealed map[Area]string
	focused  string
}

// New returns an empty shell.
func New() *Shell {
	return &Shell{revealed: make(map[Area]string)}
}

// AddWidget docks w. The widget is not revealed or focused.
func (s *Shell) AddWidget(w Widget, p Placement) error {
	if w == nil {
		return errors.New("add widget: nil widget")
	}
	if w.Disposed() {
		return fmt.Errorf("add widget %s: %w", w.ID(), ErrWidgetDisposed)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(w.ID()) >= 0 {
		return fmt.Errorf("add widget %s: %w", w.ID(), ErrDuplicateWidget)
	}
	s.slots = append(s.slots, slot{widget: w, area: p.Area})
	if _, ok := s.revealed[p.Area]; !ok {
		s.revealed[p.Area] = w.ID()
	}
	return nil
}

func (s *Shell) indexLocked(id string) int {
	for i, sl := range s.slots {
		if sl.widget.ID() == id {
			return i
		}
	}
	return -1
}

// RevealWidget makes id the visible widget of its area without moving focus.
func (s *Shell) RevealWidget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.revealed[s.slots[idx].area] = id
	return true
}

// ActivateWidget reveals id and gives it focus.
func (s *Shell) ActivateWidget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.revealed[s.slots[idx].area] = id
	s.focused = id
	return true
}

// CloseWidget disposes id and removes it from the shell.
func (s *Shell) CloseWidget(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.slots[idx]
	s.slots = append(s.slots[:idx:idx], s.slots[idx+1:]...)
	if s.revealed[removed.area] == id {
		delete(s.revealed, removed.area)
		for i := len(s.slots) - 1; i >= 0; i-- {
			if s.slots[i].area == removed.area {
				s.revealed[removed.area] = s.slots[i].widget.ID()
				break
			}
		}
	}
	if s.focused == id {
		s.focused = ""
	}
	s.mu.Unlock()
	removed.widget.Dispose()
	return true
}

// Widget returns the docked widget with id.
func (s *Shell) Widget(id string) (Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, false
	}
	return s.slots[idx].widget, true
}

// Widgets lists docked widgets in the order they were added.
func (s *Shell) Widgets() []Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Widget, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.widget
	}
	return out
}

// Revealed returns the visible widget of area.
func (s *Shell) Revealed(area Area) (Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.revealed[area]
	if !ok {
		return nil, false
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, false
	}
	return s.slots[idx].widget, true
}

// Active returns the focused widget.
func (s *Shell) Active() (Widget, bool) {
	s.mu.RLock()
	id := s.focused
	s.mu.RUnlock()
	if id == "" {
		return nil, false
	}
	return s.Widget(id)
}

// Focused implements menuview.FocusTracker. The returned handle stays valid
// after the widget is closed and then reports itself detached.
func (s *Shell) Focused() menuview.Focusable {
	w, ok := s.Active()
	if !ok {
		return nil
	}
	return &handle{shell: s, id: w.ID()}
}

type handle struct {
	shell *Shell
	id    string
}

func (h *handle) ID() string { return h.id }

func (h *handle) Attached() bool {
	w, ok := h.shell.Widget(h.id)
	return ok && !w.Disposed()
}

func (h *handle) Focus() {
	h.shell.ActivateWidget(h.id)
}
