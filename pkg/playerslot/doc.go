// Package playerslot manages the bounded space of four-digit player
// identifiers used by game lobbies.
//
// Identifiers are decimal strings from "0000" through "9999", always
// zero-padded to four characters. The package offers two allocation
// strategies on top of the shared Format/Parse helpers:
//
//   - Allocator draws candidates from a monotonic counter (or any NextFunc)
//     and probes a caller-supplied predicate until it finds an unused id.
//     The counter itself may live in the application or in the backing
//     store, so this strategy works across multiple processes.
//   - Pool tracks every slot explicitly in a bitmap and always hands out
//     the lowest free id. It is strictly in-process but gives deterministic
//     ids and O(1) exhaustion checks.
//
// # Usage
//
// Counter-backed probing:
//
//	var counter playerslot.Counter
//	alloc := playerslot.NewAllocator(counter.Next, func(ctx context.Context, id string) (bool, error) {
//		return store.PlayerIDInUse(ctx, id)
//	})
//
//	id, err := alloc.Allocate(ctx)
//	if errors.Is(err, playerslot.ErrPoolExhausted) {
//		// all 10,000 ids are taken
//	}
//
// Explicit slot pool:
//
//	pool, err := playerslot.NewPool(playerslot.SpaceSize)
//	if err != nil {
//		return err
//	}
//
//	id, err := pool.Acquire()
//	...
//	pool.Release(id) // safe to call twice
//
// # Error Handling
//
// Both strategies report a fully occupied id space with ErrPoolExhausted.
// Parse rejects anything that is not exactly four decimal digits with
// ErrInvalidID, and NewPool rejects capacities outside (0, SpaceSize] with
// ErrInvalidCapacity. Errors carry their cause where one exists and can be
// inspected with errors.Is.
package playerslot
