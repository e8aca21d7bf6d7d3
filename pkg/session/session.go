package session

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/broadsidehq/lobby/pkg/playerslot"
	"github.com/broadsidehq/lobby/pkg/validator"
)

// Player name and fleet size constraints enforced on session creation.
const (
	PlayerNameMinLen = 4
	PlayerNameMaxLen = 32
)

var (
	// playerNameRegex matches names built from letters, digits, dash,
	// underscore and dot.
	playerNameRegex = regexp.MustCompile(`^[A-Za-z0-9\-_.]+$`)

	// NumShipsChoices lists the accepted fleet sizes. Values are strings
	// because they travel as-is between client, store and game engine.
	NumShipsChoices = []string{"1", "2", "3", "4", "5"}
)

// Session represents one player's seat in the lobby
type Session struct {
	ID         uuid.UUID `json:"session_id" bson:"_id"`
	PlayerID   string    `json:"player_id" bson:"player_id"`
	PlayerName string    `json:"player_name" bson:"player_name"`
	NumShips   string    `json:"num_ships" bson:"num_ships"`
	StartedAt  time.Time `json:"session_started" bson:"session_started"`
	UsedAt     time.Time `json:"session_used" bson:"session_used"`
}

// NewSession creates a session for an allocated player id. Both timestamps
// start at now; the activity clock slides forward on every Touch.
func NewSession(id uuid.UUID, playerID, playerName, numShips string, now time.Time) *Session {
	return &Session{
		ID:         id,
		PlayerID:   playerID,
		PlayerName: playerName,
		NumShips:   numShips,
		StartedAt:  now,
		UsedAt:     now,
	}
}

// ValidateProfile checks the player-supplied fields against the lobby rules.
// Returns validator.ValidationErrors listing every violated rule, or nil.
func ValidateProfile(playerName, numShips string) error {
	return validator.Apply(
		validator.RequiredString("player_name", playerName),
		validator.MinLenString("player_name", playerName, PlayerNameMinLen),
		validator.MaxLenString("player_name", playerName, PlayerNameMaxLen),
		validator.MatchesCompiled("player_name", playerName, playerNameRegex, "letters, digits, '-', '_' or '.'"),
		validator.RequiredString("num_ships", numShips),
		validator.InListString("num_ships", numShips, NumShipsChoices),
	)
}

// Validate checks the complete session record, including the generated ids.
func (s *Session) Validate() error {
	if s == nil || s.ID == uuid.Nil || !playerslot.IsValid(s.PlayerID) {
		return ErrInvalidSession
	}
	return ValidateProfile(s.PlayerName, s.NumShips)
}

// IsIdle reports whether the session's last use fell before the cutoff.
// A session last used exactly at the cutoff is still live: the activity
// window is closed at both ends.
func (s *Session) IsIdle(cutoff time.Time) bool {
	return s != nil && s.UsedAt.Before(cutoff)
}

// Touch slides the activity clock to now.
func (s *Session) Touch(now time.Time) {
	if s == nil {
		return
	}
	s.UsedAt = now
}
