package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/broadsidehq/lobby/pkg/playerslot"
)

// Option is a functional option for configuring the Registry
type Option func(*Registry)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(r *Registry) {
		r.config = config
	}
}

// WithActivityWindow sets how long a session stays active after its last use
func WithActivityWindow(window time.Duration) Option {
	return func(r *Registry) {
		r.config.ActivityWindow = window
	}
}

// WithCleanupInterval sets the background reaper interval (0 disables it)
func WithCleanupInterval(interval time.Duration) Option {
	return func(r *Registry) {
		r.config.CleanupInterval = interval
	}
}

// WithCreateAttempts bounds the claim-race retries in Create
func WithCreateAttempts(attempts int) Option {
	return func(r *Registry) {
		r.config.CreateAttempts = attempts
	}
}

// WithLogger sets the logger for registry events
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithSlotPool switches player id allocation to an explicit in-process pool.
// Call Restore after construction when the store may already hold sessions.
func WithSlotPool(pool *playerslot.Pool) Option {
	return func(r *Registry) {
		r.ids = &poolSource{pool: pool}
	}
}

// WithClock sets the time source, primarily for tests
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithIDGenerator sets the session id generator, primarily for tests
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(r *Registry) {
		r.newID = newID
	}
}
