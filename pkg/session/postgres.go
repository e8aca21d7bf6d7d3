package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/broadsidehq/lobby/pkg/pg"
)

// PGStore implements Store on PostgreSQL. Player id uniqueness comes from a
// unique index, the id counter from a sequence, and the window check in Touch
// from a conditional UPDATE, so every invariant holds across processes
// sharing the database. The schema ships in the migrations directory.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed session store
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Create stores a new session and claims its player id
func (s *PGStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.ID == uuid.Nil {
		return ErrInvalidSession
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO player_sessions (session_id, player_id, player_name, num_ships, session_started, session_used)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.PlayerID, session.PlayerName, session.NumShips, session.StartedAt, session.UsedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicatePlayerID
		}
		return errors.Join(ErrStoreFailure, err)
	}

	return nil
}

// Get retrieves a session by id without touching it
func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT session_id, player_id, player_name, num_ships, session_started, session_used
		FROM player_sessions
		WHERE session_id = $1`,
		id,
	)

	return scanSession(row)
}

// Touch atomically validates the activity window and slides it to now
func (s *PGStore) Touch(ctx context.Context, id uuid.UUID, now, cutoff time.Time) (*Session, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE player_sessions
		SET session_used = $2
		WHERE session_id = $1 AND session_used >= $3
		RETURNING session_id, player_id, player_name, num_ships, session_started, session_used`,
		id, now, cutoff,
	)

	return scanSession(row)
}

// Delete removes a session and returns the removed record
func (s *PGStore) Delete(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := s.db.QueryRow(ctx, `
		DELETE FROM player_sessions
		WHERE session_id = $1
		RETURNING session_id, player_id, player_name, num_ships, session_started, session_used`,
		id,
	)

	return scanSession(row)
}

// DeleteIdle removes sessions last used before cutoff
func (s *PGStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		DELETE FROM player_sessions
		WHERE session_used < $1
		RETURNING player_id`,
		cutoff,
	)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	freed, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return freed, nil
}

// Count returns the number of sessions used at or after cutoff
func (s *PGStore) Count(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM player_sessions WHERE session_used >= $1`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	return count, nil
}

// PlayerIDInUse reports whether any session, idle or not, claims the id
func (s *PGStore) PlayerIDInUse(ctx context.Context, playerID string) (bool, error) {
	var claimed bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM player_sessions WHERE player_id = $1)`,
		playerID,
	).Scan(&claimed)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}

	return claimed, nil
}

// PlayerIDs returns every claimed player id
func (s *PGStore) PlayerIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT player_id FROM player_sessions`)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return ids, nil
}

// NextPlayerID returns the next value of the player id sequence
func (s *PGStore) NextPlayerID(ctx context.Context) (uint64, error) {
	var next int64
	err := s.db.QueryRow(ctx, `SELECT nextval('player_id_seq')`).Scan(&next)
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	return uint64(next), nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var sess Session
	err := row.Scan(&sess.ID, &sess.PlayerID, &sess.PlayerName, &sess.NumShips, &sess.StartedAt, &sess.UsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return &sess, nil
}
