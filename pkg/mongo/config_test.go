package mongo_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadsidehq/lobby/pkg/mongo"
)

func TestConfig_EnvParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("LOBBY_MONGODB_URL", "mongodb://localhost:27017")

		var cfg mongo.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, "mongodb://localhost:27017", cfg.ConnectionURL)
		assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, uint64(100), cfg.MaxPoolSize)
		assert.True(t, cfg.RetryWrites)
		assert.True(t, cfg.RetryReads)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("LOBBY_MONGODB_URL", "mongodb://db:27017")
		t.Setenv("LOBBY_MONGODB_MAX_POOL_SIZE", "10")
		t.Setenv("LOBBY_MONGODB_RETRY_WRITES", "false")

		var cfg mongo.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, uint64(10), cfg.MaxPoolSize)
		assert.False(t, cfg.RetryWrites)
	})
}
