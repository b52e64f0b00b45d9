package opener

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/tmux-menubar/internal/shell"
)

type testWidget struct {
	id       string
	disposed atomic.Bool
}

func (w *testWidget) ID() string             { return w.id }
func (w *testWidget) Title() string          { return w.id }
func (w *testWidget) Render(int, int) string { return "" }
func (w *testWidget) Dispose()               { w.disposed.Store(true) }
func (w *testWidget) Disposed() bool         { return w.disposed.Load() }

type testFactory struct {
	id      string
	calls   atomic.Int32
	err     error
	gate    chan struct{}
	onBuild func(*testWidget)
}

func (f *testFactory) ID() string { return f.id }

func (f *testFactory) CreateWidget(ctx context.Context, opts WidgetOptions) (shell.Widget, error) {
	n := f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	w := &testWidget{id: opts["uri"] + "#" + string(rune('0'+n))}
	if f.onBuild != nil {
		f.onBuild(w)
	}
	return w, nil
}

type recordingShell struct {
	mu    sync.Mutex
	added []string
	calls []string
}

func (s *recordingShell) AddWidget(w shell.Widget, _ shell.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.added {
		if id == w.ID() {
			return shell.ErrDuplicateWidget
		}
	}
	s.added = append(s.added, w.ID())
	return nil
}

func (s *recordingShell) RevealWidget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "reveal:"+id)
	return true
}

func (s *recordingShell) ActivateWidget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "activate:"+id)
	return true
}

func newTestHandler(t *testing.T, f *testFactory) (*Handler, *recordingShell) {
	t.Helper()
	m := NewWidgetManager()
	if err := m.Register(f); err != nil {
		t.Fatalf("register: %v", err)
	}
	sh := &recordingShell{}
	return NewHandler("help", "help", f.id, m, sh), sh
}

func TestRevealReusesExistingWidget(t *testing.T) {
	f := &testFactory{id: "about"}
	h, sh := newTestHandler(t, f)
	ctx := context.Background()

	first, err := h.Open(ctx, "help:about", Options{Mode: ModeOpen})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(sh.calls) != 0 {
		t.Fatalf("expected open mode to skip reveal and activate, got %v", sh.calls)
	}
	second, err := h.Open(ctx, "help:about", Options{Mode: ModeReveal})
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if second != first {
		t.Fatalf("expected existing widget to be reused")
	}
	if f.calls.Load() != 1 {
		t.Fatalf("expected a single creation, got %d", f.calls.Load())
	}
	if len(sh.calls) != 1 || sh.calls[0] != "reveal:"+first.ID() {
		t.Fatalf("expected reveal only, got %v", sh.calls)
	}
	if len(sh.added) != 1 {
		t.Fatalf("expected widget added once, got %v", sh.added)
	}
}

func TestDefaultModeActivates(t *testing.T) {
	h, sh := newTestHandler(t, &testFactory{id: "about"})
	w, err := h.Open(context.Background(), "help:about", Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(sh.calls) != 1 || sh.calls[0] != "activate:"+w.ID() {
		t.Fatalf("expected activate, got %v", sh.calls)
	}
}

func TestFactoryErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	h, sh := newTestHandler(t, &testFactory{id: "about", err: boom})
	_, err := h.Open(context.Background(), "help:about", Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}
	if len(sh.added) != 0 {
		t.Fatalf("expected nothing added on failure")
	}
}

func TestDisposedDuringCreationSkipsShell(t *testing.T) {
	f := &testFactory{id: "about", onBuild: func(w *testWidget) { w.Dispose() }}
	h, sh := newTestHandler(t, f)
	_, err := h.Open(context.Background(), "help:about", Options{})
	if !errors.Is(err, ErrWidgetDisposed) {
		t.Fatalf("expected ErrWidgetDisposed, got %v", err)
	}
	if len(sh.added) != 0 || len(sh.calls) != 0 {
		t.Fatalf("expected no shell side effects, got %v %v", sh.added, sh.calls)
	}
	if _, ok := h.GetByURI("help:about"); ok {
		t.Fatalf("expected disposed widget not to be returned")
	}
}

func TestCancelledContextSkipsShell(t *testing.T) {
	f := &testFactory{id: "about", gate: make(chan struct{})}
	h, sh := newTestHandler(t, f)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := h.Open(ctx, "help:about", Options{})
		done <- err
	}()
	for f.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	close(f.gate)
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sh.added) != 0 {
		t.Fatalf("expected no placement after cancellation")
	}
}

func TestConcurrentOpensShareCreation(t *testing.T) {
	f := &testFactory{id: "about", gate: make(chan struct{})}
	h, _ := newTestHandler(t, f)
	var wg sync.WaitGroup
	results := make([]shell.Widget, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := h.Open(context.Background(), "help:about", Options{Mode: ModeOpen})
			if err == nil {
				results[i] = w
			}
		}(i)
	}
	for f.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	close(f.gate)
	wg.Wait()
	if f.calls.Load() != 1 {
		t.Fatalf("expected one creation, got %d", f.calls.Load())
	}
	for _, w := range results {
		if w == nil || w != results[0] {
			t.Fatalf("expected every caller to get the same widget")
		}
	}
}

func TestGetByURIAndAll(t *testing.T) {
	h, _ := newTestHandler(t, &testFactory{id: "about"})
	ctx := context.Background()
	a, _ := h.Open(ctx, "help:a", Options{})
	b, _ := h.Open(ctx, "help:b", Options{})
	if got, ok := h.GetByURI("help:b"); !ok || got != b {
		t.Fatalf("expected lookup by uri")
	}
	all := h.All()
	if len(all) != 2 || all[0] != a || all[1] != b {
		t.Fatalf("unexpected widgets %v", all)
	}
	a.Dispose()
	if len(h.All()) != 1 {
		t.Fatalf("expected disposed widget dropped")
	}
}

func TestUnknownFactoryAndService(t *testing.T) {
	m := NewWidgetManager()
	h := NewHandler("help", "help", "missing", m, &recordingShell{})
	if _, err := h.Open(context.Background(), "help:x", Options{}); !errors.Is(err, ErrUnknownFactory) {
		t.Fatalf("expected ErrUnknownFactory, got %v", err)
	}
	svc := NewService(h)
	if _, err := svc.Open(context.Background(), "file:/tmp/x", Options{}); !errors.Is(err, ErrNoHandler) {
		t.Fatalf("expected ErrNoHandler, got %v", err)
	}
	if _, ok := svc.Handler("help:about"); !ok {
		t.Fatalf("expected help handler")
	}
}

func TestKeyIsCanonical(t *testing.T) {
	a := Key("f", WidgetOptions{"b": "2", "a": "1"})
	b := Key("f", WidgetOptions{"a": "1", "b": "2"})
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if Key("f", nil) == Key("g", nil) {
		t.Fatalf("expected factory id in key")
	}
}
