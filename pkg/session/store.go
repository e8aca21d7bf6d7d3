package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for session persistence. Implementations must
// keep the player id claim and the session record consistent: a player id is
// claimed exactly as long as a session holding it exists, reaped or not.
type Store interface {
	// Create stores a new session and claims its player id.
	// Returns ErrDuplicatePlayerID when the id is already claimed.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by id without touching it. Idle sessions are
	// returned as long as they have not been reaped.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Touch atomically checks that the session was used at or after cutoff
	// and slides its activity clock to now, returning the refreshed session.
	// Missing and idle sessions both return ErrSessionNotFound.
	Touch(ctx context.Context, id uuid.UUID, now, cutoff time.Time) (*Session, error)

	// Delete removes a session and returns the removed record so the caller
	// can release its player id. Returns ErrSessionNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) (*Session, error)

	// DeleteIdle removes every session last used before cutoff and returns
	// the player ids that became free.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error)

	// Count returns the number of sessions used at or after cutoff.
	Count(ctx context.Context, cutoff time.Time) (int, error)

	// PlayerIDInUse reports whether a player id is claimed by any session,
	// idle or not. Idle sessions keep their claim until reaped.
	PlayerIDInUse(ctx context.Context, playerID string) (bool, error)

	// PlayerIDs returns every claimed player id, for warming a slot pool.
	PlayerIDs(ctx context.Context) ([]string, error)

	// NextPlayerID returns the next value of the store's player id counter.
	NextPlayerID(ctx context.Context) (uint64, error)
}
