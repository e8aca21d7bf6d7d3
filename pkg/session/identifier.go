package session

import (
	"context"

	"github.com/broadsidehq/lobby/pkg/playerslot"
)

// identifierSource abstracts the two player id allocation strategies.
// Acquire may hand out an id that loses the claim race in a shared store;
// the Registry then either keeps it marked taken (duplicate claim) or
// releases it (persistence failure).
type identifierSource interface {
	Acquire(ctx context.Context) (string, error)
	Release(id string)
	Reserve(id string) bool
}

// probeSource draws candidates from the store's counter and probes the store
// for collisions. The store itself is the source of truth, so Release and
// Reserve have nothing to track.
type probeSource struct {
	alloc *playerslot.Allocator
}

func newProbeSource(store Store) *probeSource {
	return &probeSource{
		alloc: playerslot.NewAllocator(store.NextPlayerID, store.PlayerIDInUse),
	}
}

func (p *probeSource) Acquire(ctx context.Context) (string, error) {
	return p.alloc.Allocate(ctx)
}

func (p *probeSource) Release(string) {}

func (p *probeSource) Reserve(string) bool { return false }

// poolSource tracks every slot in an in-process bitmap pool.
type poolSource struct {
	pool *playerslot.Pool
}

func (p *poolSource) Acquire(_ context.Context) (string, error) {
	return p.pool.Acquire()
}

func (p *poolSource) Release(id string) {
	p.pool.Release(id)
}

func (p *poolSource) Reserve(id string) bool {
	return p.pool.Reserve(id)
}
