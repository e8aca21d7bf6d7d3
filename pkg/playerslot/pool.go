package playerslot

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Pool is a thread-safe explicit slot pool over the id space. Each slot maps
// to one formatted id; Acquire always hands out the lowest free slot so freed
// ids are reused promptly.
type Pool struct {
	mu       sync.Mutex
	slots    *bitset.BitSet
	capacity uint
}

// NewPool creates a pool managing ids "0000" through Format(capacity-1).
// Capacity must be in (0, SpaceSize].
func NewPool(capacity uint) (*Pool, error) {
	if capacity == 0 || capacity > SpaceSize {
		return nil, ErrInvalidCapacity
	}
	return &Pool{
		slots:    bitset.New(capacity),
		capacity: capacity,
	}, nil
}

// Acquire claims and returns the lowest free id.
// Returns ErrPoolExhausted when every slot is taken.
func (p *Pool) Acquire() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.slots.NextClear(0)
	if !ok || idx >= p.capacity {
		return "", ErrPoolExhausted
	}

	p.slots.Set(idx)
	return Format(uint64(idx)), nil
}

// Release frees a previously acquired id. Releasing a free or malformed id is
// a no-op; the return value reports whether a slot was actually freed.
func (p *Pool) Release(id string) bool {
	idx, err := Parse(id)
	if err != nil || idx >= p.capacity {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.slots.Test(idx) {
		return false
	}
	p.slots.Clear(idx)
	return true
}

// Reserve marks an id as taken without going through Acquire. Used to warm a
// fresh pool from persisted state. The return value reports whether the slot
// changed from free to taken.
func (p *Pool) Reserve(id string) bool {
	idx, err := Parse(id)
	if err != nil || idx >= p.capacity {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.slots.Test(idx) {
		return false
	}
	p.slots.Set(idx)
	return true
}

// InUse reports whether the id is currently taken.
func (p *Pool) InUse(id string) bool {
	idx, err := Parse(id)
	if err != nil || idx >= p.capacity {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.slots.Test(idx)
}

// Capacity returns the total number of slots managed by the pool.
func (p *Pool) Capacity() uint {
	return p.capacity
}

// Used returns the number of currently taken slots.
func (p *Pool) Used() uint {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.slots.Count()
}

// Available returns the number of free slots.
func (p *Pool) Available() uint {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.capacity - p.slots.Count()
}
