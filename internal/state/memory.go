package state

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Get and Save both work on
// deep copies, so a fetched session is isolated until saved back, matching
// the semantics of the external stores.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get returns a deep copy of the stored session.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s.Clone(), nil
}

// Save stores a deep copy of the session, bumping its revision.
func (m *MemoryStore) Save(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.Revision++
	session.UpdatedAt = time.Now()
	m.sessions[session.ID] = session.Clone()
	return nil
}
