package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/broadsidehq/lobby/pkg/logger"
	"github.com/broadsidehq/lobby/pkg/playerslot"
)

// Registry orchestrates the lobby session life-cycle: creating sessions with
// unique player ids, sliding the activity window on every resolve, and
// reclaiming ids from sessions that went idle.
type Registry struct {
	store     Store
	ids       identifierSource
	config    Config
	log       *slog.Logger
	now       func() time.Time
	newID     func() uuid.UUID
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new session registry with the given options.
// Without WithStore it falls back to an in-memory store; without WithSlotPool
// it allocates player ids by drawing from the store's counter and probing for
// collisions.
func New(opts ...Option) *Registry {
	r := &Registry{
		config: DefaultConfig(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.New,
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	// A non-positive retry bound would skip allocation entirely and reject
	// every create as exhausted.
	if r.config.CreateAttempts < 1 {
		r.config.CreateAttempts = 1
	}

	if r.store == nil {
		r.store = NewMemoryStore()
	}

	if r.ids == nil {
		r.ids = newProbeSource(r.store)
	}

	if r.config.CleanupInterval > 0 {
		r.ticker = time.NewTicker(r.config.CleanupInterval)
		go r.cleanupLoop()
	}

	return r
}

// Create validates the player profile, allocates a player id and persists the
// session. Validation runs before allocation so invalid input never consumes
// a slot. When a drawn id turns out to be claimed in a shared store, Create
// draws again, up to Config.CreateAttempts times.
func (r *Registry) Create(ctx context.Context, playerName, numShips string) (*Session, error) {
	if err := ValidateProfile(playerName, numShips); err != nil {
		return nil, err
	}

	for attempt := range r.config.CreateAttempts {
		playerID, err := r.ids.Acquire(ctx)
		if err != nil {
			return nil, err
		}

		sess := NewSession(r.newID(), playerID, playerName, numShips, r.now())
		err = r.store.Create(ctx, sess)
		if err == nil {
			r.log.InfoContext(ctx, "session created",
				logger.SessionID(sess.ID),
				logger.PlayerID(sess.PlayerID),
				logger.PlayerName(sess.PlayerName),
			)
			return sess, nil
		}

		if errors.Is(err, ErrDuplicatePlayerID) {
			// The id is claimed by another session, so it stays marked
			// taken. Draw a fresh one.
			r.log.WarnContext(ctx, "player id already claimed",
				logger.PlayerID(playerID),
				logger.RetryCount(attempt+1),
			)
			continue
		}

		// Persisting failed outright; the allocated id must not leak.
		r.ids.Release(playerID)
		return nil, err
	}

	return nil, playerslot.ErrPoolExhausted
}

// Resolve validates that the session exists and is still inside its activity
// window, then slides the window forward. Missing and idle sessions are
// indistinguishable to the caller: both return ErrSessionNotFound.
func (r *Registry) Resolve(ctx context.Context, id uuid.UUID) (*Session, error) {
	now := r.now()
	return r.store.Touch(ctx, id, now, r.config.Cutoff(now))
}

// End destroys a session and releases its player id. Idle sessions that have
// not been reaped yet can still be ended. Ending a session that no longer
// exists is a no-op, so repeated calls are safe and never double-release an
// id that another session may have claimed in the meantime.
func (r *Registry) End(ctx context.Context, id uuid.UUID) error {
	sess, err := r.store.Delete(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	r.ids.Release(sess.PlayerID)
	r.log.InfoContext(ctx, "session ended",
		logger.SessionID(sess.ID),
		logger.PlayerID(sess.PlayerID),
	)
	return nil
}

// ActivePlayers reaps idle sessions and returns the number of players still
// inside the activity window. Reaping is best-effort cleanup: a failed sweep
// is logged and the count proceeds, since idle sessions are excluded by the
// window predicate whether their rows are gone or not.
func (r *Registry) ActivePlayers(ctx context.Context) (int, error) {
	if _, err := r.Reap(ctx); err != nil {
		r.log.ErrorContext(ctx, "reaping idle sessions failed", logger.Error(err))
	}

	return r.store.Count(ctx, r.config.Cutoff(r.now()))
}

// Reap removes every session that fell out of the activity window and
// releases their player ids. Returns the number of sessions removed. Ids
// freed before a mid-sweep failure are still released.
func (r *Registry) Reap(ctx context.Context) (int, error) {
	freed, err := r.store.DeleteIdle(ctx, r.config.Cutoff(r.now()))

	for _, playerID := range freed {
		r.ids.Release(playerID)
	}

	if len(freed) > 0 {
		r.log.InfoContext(ctx, "reaped idle sessions", slog.Int("count", len(freed)))
	}

	return len(freed), err
}

// Restore warms the identifier source from the store so that a freshly
// started registry does not hand out player ids that are still claimed.
// Only meaningful with WithSlotPool; the probing strategy consults the store
// directly and needs no warm-up.
func (r *Registry) Restore(ctx context.Context) error {
	ids, err := r.store.PlayerIDs(ctx)
	if err != nil {
		return err
	}

	restored := 0
	for _, playerID := range ids {
		if r.ids.Reserve(playerID) {
			restored++
		}
	}

	if restored > 0 {
		r.log.InfoContext(ctx, "restored player id claims", slog.Int("count", restored))
	}

	return nil
}

// Close stops the background reaper. Safe to call multiple times, including
// concurrently.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		if r.ticker != nil {
			r.ticker.Stop()
		}
		close(r.done)
	})
	return nil
}

// cleanupLoop runs the reaper on the configured interval
func (r *Registry) cleanupLoop() {
	for {
		select {
		case <-r.ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := r.Reap(ctx); err != nil {
				r.log.ErrorContext(ctx, "reaping idle sessions failed", logger.Error(err))
			}
			cancel()
		case <-r.done:
			return
		}
	}
}
