package screening

import "sync"

// Store keeps one Session per conversation identity. All mutating access to a
// session goes through WithSession, which serializes transitions per key while
// letting different sessions proceed in parallel.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*sessionEntry),
	}
}

// WithSession runs fn with exclusive access to the session for id. The session
// is created on first contact.
func (s *Store) WithSession(id string, fn func(*Session) error) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if !ok {
		entry = &sessionEntry{session: newSession(id)}
		s.sessions[id] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return fn(entry.session)
}

// Snapshot returns a copy of the session for id, or nil when it does not
// exist. Slices still reference the live session; it is meant for inspection.
func (s *Store) Snapshot(id string) *Session {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	clone := *entry.session
	return &clone
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
