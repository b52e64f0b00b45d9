package opener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/tmux-menubar/internal/shell"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownFactory   = errors.New("unknown widget factory")
	ErrDuplicateFactory = errors.New("widget factory already registered")
)

// WidgetOptions parameterise a factory. Two requests with equal options share
// one widget.
type WidgetOptions map[string]string

// Factory materialises widgets.
type Factory interface {
	ID() string
	CreateWidget(ctx context.Context, opts WidgetOptions) (shell.Widget, error)
}

// WidgetManager caches widgets by factory id and options.
type WidgetManager struct {
	mu        sync.Mutex
	factories map[string]Factory
	widgets   map[string]entry
	order     []string
	group     singleflight.Group
}

type entry struct {
	factoryID string
	widget    shell.Widget
}

type created struct {
	widget shell.Widget
	fresh  bool
}

// NewWidgetManager returns an empty manager.
func NewWidgetManager() *WidgetManager {
	return &WidgetManager{
		factories: make(map[string]Factory),
		widgets:   make(map[string]entry),
	}
}

// Register adds a factory.
func (m *WidgetManager) Register(f Factory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.factories[f.ID()]; ok {
		return fmt.Errorf("register %s: %w", f.ID(), ErrDuplicateFactory)
	}
	m.factories[f.ID()] = f
	return nil
}

// Key is the cache key of a widget: the factory id plus the canonical JSON
// encoding of its options (map keys are sorted by encoding/json).
func Key(factoryID string, opts WidgetOptions) string {
	if opts == nil {
		opts = WidgetOptions{}
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return factoryID
	}
	return factoryID + "|" + string(data)
}

// GetWidget returns the live widget for factoryID and opts.
func (m *WidgetManager) GetWidget(factoryID string, opts WidgetOptions) (shell.Widget, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookupLocked(Key(factoryID, opts))
}

func (m *WidgetManager) lookupLocked(key string) (shell.Widget, bool) {
	e, ok := m.widgets[key]
	if !ok {
		return nil, false
	}
	if e.widget.Disposed() {
		m.forgetLocked(key)
		return nil, false
	}
	return e.widget, true
}

func (m *WidgetManager) forgetLocked(key string) {
	delete(m.widgets, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
}

// GetOrCreateWidget returns the cached widget or creates one. Concurrent
// requests for the same key share a single creation. The bool reports whether
// a new widget was created.
func (m *WidgetManager) GetOrCreateWidget(ctx context.Context, factoryID string, opts WidgetOptions) (shell.Widget, bool, error) {
	key := Key(factoryID, opts)
	m.mu.Lock()
	if w, ok := m.lookupLocked(key); ok {
		m.mu.Unlock()
		return w, false, nil
	}
	factory, ok := m.factories[factoryID]
	m.mu.Unlock()
	if !ok {
		return nil, false, fmt.Errorf("%s: %w", factoryID, ErrUnknownFactory)
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		m.mu.Lock()
		if w, ok := m.lookupLocked(key); ok {
			m.mu.Unlock()
			return created{widget: w}, nil
		}
		m.mu.Unlock()
		w, err := factory.CreateWidget(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("create %s widget: %w", factoryID, err)
		}
		m.mu.Lock()
		m.widgets[key] = entry{factoryID: factoryID, widget: w}
		m.order = append(m.order, key)
		m.mu.Unlock()
		return created{widget: w, fresh: true}, nil
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(created)
	return res.widget, res.fresh, nil
}

// Widgets lists the live widgets of factoryID in creation order.
func (m *WidgetManager) Widgets(factoryID string) []shell.Widget {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []shell.Widget
	for _, key := range append([]string(nil), m.order...) {
		e := m.widgets[key]
		if e.factoryID != factoryID {
			continue
		}
		if w, ok := m.lookupLocked(key); ok {
			out = append(out, w)
		}
	}
	return out
}
