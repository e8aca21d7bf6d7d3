package playerslot

import (
	"strconv"
)

const (
	// Width is the number of decimal digits in a player id.
	Width = 4

	// SpaceSize is the total number of distinct player ids ("0000" to "9999").
	SpaceSize = 10000
)

// Format maps a raw counter value onto the bounded id space, producing a
// zero-padded decimal string of Width digits. Values beyond the space wrap
// around, so a monotonically increasing counter cycles through every id.
func Format(n uint64) string {
	s := strconv.FormatUint(n%SpaceSize, 10)
	if len(s) < Width {
		s = "0000"[:Width-len(s)] + s
	}
	return s
}

// Parse converts a formatted player id back to its slot number.
// Returns ErrInvalidID for anything that is not exactly Width decimal digits.
func Parse(id string) (uint, error) {
	if !IsValid(id) {
		return 0, ErrInvalidID
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// IsValid reports whether id is a well-formed player id: exactly Width
// decimal digits, zero-padding included.
func IsValid(id string) bool {
	if len(id) != Width {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}
