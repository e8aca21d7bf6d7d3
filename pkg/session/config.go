package session

import "time"

// Config holds lobby session configuration
type Config struct {
	// ActivityWindow is how long a session counts as active after its last use
	ActivityWindow time.Duration `env:"LOBBY_SESSION_ACTIVITY_WINDOW" envDefault:"10m"`

	// CleanupInterval for the background reaper (0 to disable)
	CleanupInterval time.Duration `env:"LOBBY_SESSION_CLEANUP_INTERVAL" envDefault:"1m"`

	// CreateAttempts bounds how often Create retries after losing a player id claim race
	CreateAttempts int `env:"LOBBY_SESSION_CREATE_ATTEMPTS" envDefault:"5"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		ActivityWindow:  10 * time.Minute,
		CleanupInterval: time.Minute,
		CreateAttempts:  5,
	}
}

// Cutoff returns the oldest last-use time that still counts as active.
// Sessions last used before the cutoff are idle; a session sitting exactly
// on the cutoff is still live.
func (c Config) Cutoff(now time.Time) time.Time {
	return now.Add(-c.ActivityWindow)
}

// NewFromConfig creates a new Registry from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) *Registry {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
