package state

import "github.com/atomicstack/tmux-menubar/internal/tmux"

// SessionStore holds the last session list reported by the backend.
type SessionStore interface {
	Entries() []tmux.Session
	SetEntries([]tmux.Session) bool
	Err() error
	SetErr(error)
}

type sessionStore struct {
	entries []tmux.Session
	err     error
}

func NewSessionStore() SessionStore {
	return &sessionStore{}
}

func (s *sessionStore) Entries() []tmux.Session {
	return cloneSessions(s.entries)
}

// SetEntries stores entries and reports whether they differ from the
// previous list.
func (s *sessionStore) SetEntries(entries []tmux.Session) bool {
	s.err = nil
	if equalSessions(s.entries, entries) && s.entries != nil {
		return false
	}
	s.entries = cloneSessions(entries)
	if s.entries == nil {
		s.entries = []tmux.Session{}
	}
	return true
}

func (s *sessionStore) Err() error {
	return s.err
}

func (s *sessionStore) SetErr(err error) {
	s.err = err
}

func equalSessions(a, b []tmux.Session) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneSessions(entries []tmux.Session) []tmux.Session {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]tmux.Session, len(entries))
	copy(dup, entries)
	return dup
}
