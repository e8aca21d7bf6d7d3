package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/broadsidehq/lobby/pkg/playerslot"
)

// MemoryStore implements Store using in-memory maps. It keeps a claim index
// from player id to session id so collision probes and reaping stay O(1) per
// entry. Reaping is driven by the Registry, not by the store itself.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	players  map[string]uuid.UUID
	counter  atomic.Uint64
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		players:  make(map[string]uuid.UUID),
	}
}

// Create stores a new session and claims its player id
func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.ID == uuid.Nil || !playerslot.IsValid(session.PlayerID) {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, claimed := m.players[session.PlayerID]; claimed {
		return ErrDuplicatePlayerID
	}

	sessionCopy := *session
	m.sessions[session.ID] = &sessionCopy
	m.players[session.PlayerID] = session.ID
	return nil
}

// Get retrieves a session by id without touching it
func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// Touch atomically validates the activity window and slides it to now
func (m *MemoryStore) Touch(ctx context.Context, id uuid.UUID, now, cutoff time.Time) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists || session.IsIdle(cutoff) {
		return nil, ErrSessionNotFound
	}

	session.UsedAt = now
	sessionCopy := *session
	return &sessionCopy, nil
}

// Delete removes a session and returns the removed record
func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	delete(m.sessions, id)
	delete(m.players, session.PlayerID)

	sessionCopy := *session
	return &sessionCopy, nil
}

// DeleteIdle removes sessions last used before cutoff
func (m *MemoryStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var freed []string
	for id, session := range m.sessions {
		if session.IsIdle(cutoff) {
			delete(m.sessions, id)
			delete(m.players, session.PlayerID)
			freed = append(freed, session.PlayerID)
		}
	}

	return freed, nil
}

// Count returns the number of sessions used at or after cutoff
func (m *MemoryStore) Count(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, session := range m.sessions {
		if !session.IsIdle(cutoff) {
			count++
		}
	}

	return count, nil
}

// PlayerIDInUse reports whether any session, idle or not, claims the id
func (m *MemoryStore) PlayerIDInUse(ctx context.Context, playerID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, claimed := m.players[playerID]
	return claimed, nil
}

// PlayerIDs returns every claimed player id
func (m *MemoryStore) PlayerIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.players))
	for playerID := range m.players {
		ids = append(ids, playerID)
	}

	return ids, nil
}

// NextPlayerID returns the next value of the in-process counter
func (m *MemoryStore) NextPlayerID(ctx context.Context) (uint64, error) {
	return m.counter.Add(1), nil
}

// Stats returns active and idle session counts relative to cutoff
func (m *MemoryStore) Stats(cutoff time.Time) (active, idle int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, session := range m.sessions {
		if session.IsIdle(cutoff) {
			idle++
		} else {
			active++
		}
	}
	return
}
