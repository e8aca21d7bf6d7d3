package playerslot_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadsidehq/lobby/pkg/playerslot"
)

func TestNewPool(t *testing.T) {
	t.Run("rejects zero capacity", func(t *testing.T) {
		_, err := playerslot.NewPool(0)
		assert.ErrorIs(t, err, playerslot.ErrInvalidCapacity)
	})

	t.Run("rejects capacity beyond the id space", func(t *testing.T) {
		_, err := playerslot.NewPool(playerslot.SpaceSize + 1)
		assert.ErrorIs(t, err, playerslot.ErrInvalidCapacity)
	})

	t.Run("accepts full space", func(t *testing.T) {
		pool, err := playerslot.NewPool(playerslot.SpaceSize)
		require.NoError(t, err)
		assert.Equal(t, uint(playerslot.SpaceSize), pool.Capacity())
		assert.Equal(t, uint(playerslot.SpaceSize), pool.Available())
	})
}

func TestPool_Acquire(t *testing.T) {
	t.Run("hands out lowest free id", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		for _, want := range []string{"0000", "0001", "0002"} {
			id, err := pool.Acquire()
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}
	})

	t.Run("reuses released ids before higher slots", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		for range 3 {
			_, err := pool.Acquire()
			require.NoError(t, err)
		}

		require.True(t, pool.Release("0001"))

		id, err := pool.Acquire()
		require.NoError(t, err)
		assert.Equal(t, "0001", id)

		id, err = pool.Acquire()
		require.NoError(t, err)
		assert.Equal(t, "0003", id)
	})

	t.Run("reports exhaustion", func(t *testing.T) {
		pool, err := playerslot.NewPool(3)
		require.NoError(t, err)

		for range 3 {
			_, err := pool.Acquire()
			require.NoError(t, err)
		}

		_, err = pool.Acquire()
		assert.ErrorIs(t, err, playerslot.ErrPoolExhausted)
		assert.Equal(t, uint(0), pool.Available())
	})

	t.Run("recovers after release", func(t *testing.T) {
		pool, err := playerslot.NewPool(1)
		require.NoError(t, err)

		id, err := pool.Acquire()
		require.NoError(t, err)

		_, err = pool.Acquire()
		require.ErrorIs(t, err, playerslot.ErrPoolExhausted)

		require.True(t, pool.Release(id))

		again, err := pool.Acquire()
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})
}

func TestPool_Release(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		id, err := pool.Acquire()
		require.NoError(t, err)

		assert.True(t, pool.Release(id))
		assert.False(t, pool.Release(id))
		assert.Equal(t, uint(0), pool.Used())
	})

	t.Run("ignores ids never acquired", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		assert.False(t, pool.Release("0005"))
	})

	t.Run("ignores malformed ids", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		assert.False(t, pool.Release("abc"))
		assert.False(t, pool.Release(""))
	})

	t.Run("ignores ids beyond capacity", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		assert.False(t, pool.Release("0042"))
	})
}

func TestPool_Reserve(t *testing.T) {
	t.Run("marks slots taken", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		require.True(t, pool.Reserve("0000"))
		require.True(t, pool.Reserve("0002"))

		id, err := pool.Acquire()
		require.NoError(t, err)
		assert.Equal(t, "0001", id)

		id, err = pool.Acquire()
		require.NoError(t, err)
		assert.Equal(t, "0003", id)
	})

	t.Run("reports already taken slots", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		require.True(t, pool.Reserve("0004"))
		assert.False(t, pool.Reserve("0004"))
	})

	t.Run("rejects out-of-range ids", func(t *testing.T) {
		pool, err := playerslot.NewPool(10)
		require.NoError(t, err)

		assert.False(t, pool.Reserve("0042"))
		assert.False(t, pool.Reserve("x"))
	})
}

func TestPool_InUse(t *testing.T) {
	pool, err := playerslot.NewPool(10)
	require.NoError(t, err)

	id, err := pool.Acquire()
	require.NoError(t, err)

	assert.True(t, pool.InUse(id))
	assert.False(t, pool.InUse("0009"))
	assert.False(t, pool.InUse("nope"))
}

func TestPool_Concurrency(t *testing.T) {
	pool, err := playerslot.NewPool(playerslot.SpaceSize)
	require.NoError(t, err)

	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id, err := pool.Acquire()
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				if _, dup := seen[id]; dup {
					t.Errorf("id %s handed out twice", id)
				}
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, uint(workers*perWorker), pool.Used())
}
