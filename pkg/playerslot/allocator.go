package playerslot

import (
	"context"
	"sync/atomic"
)

// NextFunc yields the next raw counter value. Implementations must be
// monotonic so that consecutive draws walk every residue of the id space.
type NextFunc func(ctx context.Context) (uint64, error)

// InUseFunc reports whether a formatted id is currently claimed.
type InUseFunc func(ctx context.Context, id string) (bool, error)

// Counter is an in-process NextFunc backed by an atomic counter.
// The zero value is ready to use; the first draw returns 1.
type Counter struct {
	n atomic.Uint64
}

// Next returns the next counter value.
func (c *Counter) Next(_ context.Context) (uint64, error) {
	return c.n.Add(1), nil
}

// Allocator hands out ids from the bounded space by drawing candidates from a
// counter and probing each against the in-use check.
type Allocator struct {
	next  NextFunc
	inUse InUseFunc
}

// NewAllocator creates an allocator over the given counter and probe.
func NewAllocator(next NextFunc, inUse InUseFunc) *Allocator {
	return &Allocator{next: next, inUse: inUse}
}

// Allocate returns a currently unclaimed id. The search is bounded at
// SpaceSize candidates: a monotonic counter visits every residue exactly once
// over that many draws, so failing all of them proves exhaustion. Counter and
// probe errors abort the search immediately.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for range SpaceSize {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := a.next(ctx)
		if err != nil {
			return "", err
		}

		id := Format(n)
		used, err := a.inUse(ctx, id)
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}

	return "", ErrPoolExhausted
}
