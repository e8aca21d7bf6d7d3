package session

import "errors"

var (
	// ErrSessionNotFound indicates no live session exists for the id.
	// Expired sessions report the same error as missing ones.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates a session record with missing or malformed ids
	ErrInvalidSession = errors.New("session.invalid")

	// ErrDuplicatePlayerID indicates the player id is already claimed in the store
	ErrDuplicatePlayerID = errors.New("session.duplicate_player_id")

	// ErrStoreFailure indicates the backing store could not complete an operation
	ErrStoreFailure = errors.New("session.store_failure")

	// ErrNoStore indicates no store is configured
	ErrNoStore = errors.New("session.no_store")
)
