package playerslot

import "errors"

var (
	// ErrPoolExhausted indicates every id in the space is claimed
	ErrPoolExhausted = errors.New("playerslot.pool_exhausted")

	// ErrInvalidID indicates a malformed player id
	ErrInvalidID = errors.New("playerslot.invalid_id")

	// ErrInvalidCapacity indicates a pool capacity outside (0, SpaceSize]
	ErrInvalidCapacity = errors.New("playerslot.invalid_capacity")
)
