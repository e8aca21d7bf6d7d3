package redis_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadsidehq/lobby/pkg/redis"
)

func TestConfig_EnvParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg redis.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, "redis://localhost:6379/0", cfg.ConnectionURL)
		assert.Equal(t, 3, cfg.RetryAttempts)
		assert.Equal(t, 5*time.Second, cfg.RetryInterval)
		assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("LOBBY_REDIS_URL", "redis://:secret@cache:6380/1")
		t.Setenv("LOBBY_REDIS_CONNECT_TIMEOUT", "5s")

		var cfg redis.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, "redis://:secret@cache:6380/1", cfg.ConnectionURL)
		assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	})
}
