package flow

import "sync"

// Session is one sender's position in a flow plus the parameters bound so far.
// Sessions are process-resident and never expired; an abandoned session is
// simply overwritten on the sender's next flow entry.
type Session struct {
	UserID   int64
	Username string
	Step     StepID
	Params   map[string]any
}

// Bind merges bound parameters into the session.
func (s *Session) Bind(params map[string]any) {
	if s.Params == nil {
		s.Params = make(map[string]any)
	}
	for k, v := range params {
		s.Params[k] = v
	}
}

// String retrieves a bound string parameter.
func (s *Session) String(key string) (string, bool) {
	v, ok := s.Params[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// SessionStore isolates session persistence so an eviction policy can be
// added later without touching flow logic.
type SessionStore interface {
	Get(userID int64) (*Session, bool)
	Put(s *Session)
	Clear(userID int64)
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore constructs the in-memory SessionStore used in production and
// tests.
func NewMemoryStore() SessionStore {
	return &memoryStore{sessions: make(map[int64]*Session)}
}

func (m *memoryStore) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

func (m *memoryStore) Put(s *Session) {
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = s
}

func (m *memoryStore) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
