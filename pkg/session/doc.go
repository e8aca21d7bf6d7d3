// Package session implements the lobby's player-slot and session registry.
// Every connected player holds exactly one session that binds a random
// session id, a short four-digit player id drawn from a bounded space, the
// player's display name and fleet size, and a sliding activity window that
// decides when the seat is reclaimed.
//
// The package is storage-agnostic: any datastore that satisfies the Store
// interface can be plugged in. A concurrent in-memory implementation ships
// out of the box; PostgreSQL, Redis and MongoDB implementations cover shared
// deployments.
//
// # Architecture
//
// A Registry orchestrates the session life-cycle. It relies on a Store to
// persist session records and keep player id claims consistent, and on an
// identifier strategy to hand out free player ids: either counter-plus-probe
// against the store (the default, works across processes) or an explicit
// in-process slot pool (WithSlotPool).
//
//	┌────────┐  session id  ┌──────────────┐
//	│ Caller │ ───────────► │   Registry   │
//	└────────┘              └──────────────┘
//	                          │          │
//	              records     ▼          ▼   player ids
//	                     ┌────────┐  ┌────────────┐
//	                     │ Store  │  │ playerslot │
//	                     └────────┘  └────────────┘
//
// Sessions die in two phases. A session whose last use fell out of the
// activity window is already unresolvable, but its row and player id claim
// survive until a reap sweep physically removes them. Sweeps run inside
// ActivePlayers and, when CleanupInterval is set, on a background ticker.
//
// # Usage
//
//	registry := session.New(
//	    session.WithActivityWindow(10 * time.Minute),
//	)
//	defer registry.Close()
//
//	sess, err := registry.Create(ctx, "Alice_01", "3")
//	if err != nil {
//	    var verr validator.ValidationErrors
//	    if errors.As(err, &verr) {
//	        // invalid player_name or num_ships; nothing was allocated
//	    }
//	    return err
//	}
//
//	// every authenticated call resolves (and thereby extends) the session
//	sess, err = registry.Resolve(ctx, sess.ID)
//
//	// leaving the lobby frees the player id for the next player
//	_ = registry.End(ctx, sess.ID)
//
// # Configuration
//
// Knobs are exposed via Option functions (WithActivityWindow,
// WithCleanupInterval, WithCreateAttempts) or by passing a Config struct to
// NewFromConfig. Twelve-factor applications can populate the same fields
// from environment variables through pkg/config.
//
// # Error Handling
//
// Common error values returned by the package:
//
//   - validator.ValidationErrors – rejected player input; nothing was created
//   - playerslot.ErrPoolExhausted – every player id is claimed; retry later
//   - ErrSessionNotFound – unknown or expired session, indistinguishable on
//     purpose
package session
