package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMultiLevel(t *testing.T) (*MultiLevelCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	config := DefaultRedisConfig()
	config.Addr = mr.Addr()
	return NewMultiLevelCache(NewRedisCache(config)), mr
}

func TestMultiLevelCache_SetWritesBothLevels(t *testing.T) {
	c, mr := setupMultiLevel(t)
	defer c.Close()

	require.NoError(t, c.Set("k", "v", time.Minute))

	var fromL1 string
	require.NoError(t, c.l1.Get("k", &fromL1))
	assert.Equal(t, "v", fromL1)

	assert.True(t, mr.Exists("k"))
}

func TestMultiLevelCache_PromotesL2HitsToL1(t *testing.T) {
	c, _ := setupMultiLevel(t)
	defer c.Close()

	// Write only to L2, simulating a value set by another process.
	require.NoError(t, c.l2.Set("k", "v", time.Minute))

	var got string
	require.NoError(t, c.Get("k", &got))
	assert.Equal(t, "v", got)

	var fromL1 string
	assert.NoError(t, c.l1.Get("k", &fromL1))
}

func TestMultiLevelCache_DeleteClearsBothLevels(t *testing.T) {
	c, mr := setupMultiLevel(t)
	defer c.Close()

	require.NoError(t, c.Set("k", "v", time.Minute))
	require.NoError(t, c.Delete("k"))

	var dest string
	assert.ErrorIs(t, c.l1.Get("k", &dest), ErrCacheMiss)
	assert.False(t, mr.Exists("k"))
}

func TestMultiLevelCache_NilL2DegradesToLocal(t *testing.T) {
	c := NewMultiLevelCache(nil)

	require.NoError(t, c.Set("k", "v", time.Minute))

	var got string
	require.NoError(t, c.Get("k", &got))
	assert.Equal(t, "v", got)

	var dest string
	assert.ErrorIs(t, c.Get("missing", &dest), ErrCacheMiss)
	assert.NoError(t, c.Health())
}

func TestMultiLevelCache_Stats(t *testing.T) {
	c, _ := setupMultiLevel(t)
	defer c.Close()

	stats := c.Stats()
	assert.Contains(t, stats, "l1")
	assert.Contains(t, stats, "l2")
}
