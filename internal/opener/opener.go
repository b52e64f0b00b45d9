package opener

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/metrics"
	"github.com/atomicstack/tmux-menubar/internal/shell"
)

var (
	ErrWidgetDisposed = errors.New("widget disposed before it could be placed")
	ErrNoHandler      = errors.New("no open handler")
)

// Mode selects what Open does with the widget once it exists.
type Mode int

const (
	// ModeActivate reveals and focuses the widget. It is the default.
	ModeActivate Mode = iota
	// ModeReveal makes the widget visible without focusing it.
	ModeReveal
	// ModeOpen only docks the widget.
	ModeOpen
)

func (m Mode) String() string {
	switch m {
	case ModeActivate:
		return "activate"
	case ModeReveal:
		return "reveal"
	case ModeOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Options configure a single Open call.
type Options struct {
	Mode          Mode
	WidgetOptions WidgetOptions
	Placement     shell.Placement
}

// Shell is the subset of the application shell the opener drives.
type Shell interface {
	AddWidget(w shell.Widget, p shell.Placement) error
	RevealWidget(id string) bool
	ActivateWidget(id string) bool
}

// Handler opens URIs of one scheme through one widget factory.
type Handler struct {
	id        string
	scheme    string
	factoryID string
	manager   *WidgetManager
	shell     Shell
}

// NewHandler returns a handler for scheme backed by factoryID.
func NewHandler(id, scheme, factoryID string, manager *WidgetManager, sh Shell) *Handler {
	return &Handler{
		id:        id,
		scheme:    scheme,
		factoryID: factoryID,
		manager:   manager,
		shell:     sh,
	}
}

func (h *Handler) ID() string { return h.id }

// CanHandle reports whether uri uses the handler's scheme.
func (h *Handler) CanHandle(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme == h.scheme
}

func (h *Handler) widgetOptions(uri string, extra WidgetOptions) WidgetOptions {
	opts := WidgetOptions{"uri": uri}
	for k, v := range extra {
		if k != "uri" {
			opts[k] = v
		}
	}
	return opts
}

// Open returns the widget for uri, creating it when none exists, and applies
// opts.Mode to the shell. Factory failures are returned unchanged in the
// error chain. When the widget was disposed while it was being created the
// shell is left alone and ErrWidgetDisposed is returned.
func (h *Handler) Open(ctx context.Context, uri string, opts Options) (shell.Widget, error) {
	events.Opener.Open(h.id, uri, opts.Mode.String())
	w, fresh, err := h.manager.GetOrCreateWidget(ctx, h.factoryID, h.widgetOptions(uri, opts.WidgetOptions))
	if err != nil {
		metrics.Default.WidgetOpens.Increment(h.id, "error")
		events.Opener.Error(uri, err)
		return nil, err
	}
	if fresh {
		events.Opener.Create(h.factoryID, w.ID())
	} else {
		events.Opener.Reuse(h.factoryID, w.ID())
	}
	if w.Disposed() {
		metrics.Default.WidgetOpens.Increment(h.id, "disposed")
		events.Opener.Disposed(w.ID())
		return nil, fmt.Errorf("open %s: %w", uri, ErrWidgetDisposed)
	}
	if err := ctx.Err(); err != nil {
		metrics.Default.WidgetOpens.Increment(h.id, "cancelled")
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	if err := h.place(w, opts); err != nil {
		metrics.Default.WidgetOpens.Increment(h.id, "error")
		events.Opener.Error(uri, err)
		return nil, err
	}
	result := "reused"
	if fresh {
		result = "created"
	}
	metrics.Default.WidgetOpens.Increment(h.id, result)
	return w, nil
}

func (h *Handler) place(w shell.Widget, opts Options) error {
	if err := h.shell.AddWidget(w, opts.Placement); err != nil && !errors.Is(err, shell.ErrDuplicateWidget) {
		return err
	}
	switch opts.Mode {
	case ModeReveal:
		h.shell.RevealWidget(w.ID())
	case ModeActivate:
		h.shell.ActivateWidget(w.ID())
	}
	events.Opener.Place(w.ID(), opts.Mode.String())
	return nil
}

// GetByURI returns the live widget previously opened for uri.
func (h *Handler) GetByURI(uri string) (shell.Widget, bool) {
	return h.manager.GetWidget(h.factoryID, h.widgetOptions(uri, nil))
}

// All lists the live widgets of this handler's factory.
func (h *Handler) All() []shell.Widget {
	return h.manager.Widgets(h.factoryID)
}

// Service routes URIs to the first handler that accepts them.
type Service struct {
	handlers []*Handler
}

// NewService returns a service over handlers, consulted in order.
func NewService(handlers ...*Handler) *Service {
	return &Service{handlers: handlers}
}

// Handler returns the handler for uri.
func (s *Service) Handler(uri string) (*Handler, bool) {
	for _, h := range s.handlers {
		if h.CanHandle(uri) {
			return h, true
		}
	}
	return nil, false
}

// Open resolves the handler for uri and opens it.
func (s *Service) Open(ctx context.Context, uri string, opts Options) (shell.Widget, error) {
	h, ok := s.Handler(uri)
	if !ok {
		return nil, fmt.Errorf("%s: %w", uri, ErrNoHandler)
	}
	return h.Open(ctx, uri, opts)
}
