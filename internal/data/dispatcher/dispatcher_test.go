package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/tmux-menubar/internal/backend"
	"github.com/atomicstack/tmux-menubar/internal/state"
	"github.com/atomicstack/tmux-menubar/internal/tmux"
)

type recordingSink struct {
	calls [][]tmux.Session
}

func (r *recordingSink) Sync(s []tmux.Session) bool {
	r.calls = append(r.calls, s)
	return true
}

func TestHandleSyncsOnlyOnChange(t *testing.T) {
	sink := &recordingSink{}
	d := New(state.NewSessionStore(), sink)
	evt := backend.Event{Kind: backend.KindSessions, Sessions: []tmux.Session{{Name: "main"}}}

	res := d.Handle(evt)
	if !res.SessionsUpdated || !res.MenuChanged || len(sink.calls) != 1 {
		t.Fatalf("expected first event to sync, got %#v", res)
	}
	res = d.Handle(evt)
	if res.SessionsUpdated || len(sink.calls) != 1 {
		t.Fatalf("expected unchanged sessions to be skipped, got %#v", res)
	}
}

func TestHandleRecordsErrors(t *testing.T) {
	store := state.NewSessionStore()
	sink := &recordingSink{}
	d := New(store, sink)
	boom := errors.New("no server")
	res := d.Handle(backend.Event{Kind: backend.KindSessions, Err: boom})
	if !errors.Is(res.Err, boom) || !errors.Is(store.Err(), boom) {
		t.Fatalf("expected error recorded, got %v / %v", res.Err, store.Err())
	}
	if len(sink.calls) != 0 {
		t.Fatalf("expected no sync on error")
	}
}

func TestHandleServerChangeRefreshesMenus(t *testing.T) {
	sink := &recordingSink{}
	d := New(state.NewSessionStore(), sink)
	res := d.Handle(backend.Event{Kind: backend.KindServer, Reachable: true})
	if !res.ServerChanged || !res.MenuChanged || res.SessionsUpdated {
		t.Fatalf("expected menu refresh only, got %#v", res)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("expected no session sync for server events")
	}
}
