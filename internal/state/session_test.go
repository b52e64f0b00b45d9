package state

import (
	"errors"
	"testing"

	"github.com/atomicstack/tmux-menubar/internal/tmux"
)

func TestSessionStoreReportsChanges(t *testing.T) {
	s := NewSessionStore()
	if !s.SetEntries(nil) {
		t.Fatalf("expected first update to count as a change")
	}
	if s.SetEntries(nil) {
		t.Fatalf("expected repeated empty update to be ignored")
	}
	list := []tmux.Session{{Name: "main", Windows: 2}}
	if !s.SetEntries(list) {
		t.Fatalf("expected new session to be a change")
	}
	list[0].Name = "mutated"
	if got := s.Entries(); got[0].Name != "main" {
		t.Fatalf("expected store to keep its own copy, got %q", got[0].Name)
	}
	if s.SetEntries([]tmux.Session{{Name: "main", Windows: 2}}) {
		t.Fatalf("expected equal list to be ignored")
	}
}

func TestSessionStoreErrClearedOnUpdate(t *testing.T) {
	s := NewSessionStore()
	s.SetErr(errors.New("boom"))
	if s.Err() == nil {
		t.Fatalf("expected error stored")
	}
	s.SetEntries(nil)
	if s.Err() != nil {
		t.Fatalf("expected error cleared, got %v", s.Err())
	}
}
