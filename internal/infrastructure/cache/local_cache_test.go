package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalCacheSetGet(t *testing.T) {
	lc := NewLocalCache(4)

	lc.Set("a", []byte("one"), time.Minute)

	got, ok := lc.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("one"), got)

	_, ok = lc.Get("missing")
	assert.False(t, ok)
}

func TestLocalCacheExpiry(t *testing.T) {
	lc := NewLocalCache(4)

	lc.Set("a", []byte("one"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := lc.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, lc.Len())
}

func TestLocalCacheEvictsLeastRecentlyUsed(t *testing.T) {
	lc := NewLocalCache(2)

	lc.Set("a", []byte("one"), time.Minute)
	lc.Set("b", []byte("two"), time.Minute)

	// Touch "a" so "b" becomes the eviction candidate
	_, ok := lc.Get("a")
	require.True(t, ok)

	lc.Set("c", []byte("three"), time.Minute)

	_, ok = lc.Get("a")
	assert.True(t, ok)
	_, ok = lc.Get("b")
	assert.False(t, ok)
	_, ok = lc.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, lc.Len())
}

func TestLocalCacheOverwriteKeepsSize(t *testing.T) {
	lc := NewLocalCache(2)

	lc.Set("a", []byte("one"), time.Minute)
	lc.Set("a", []byte("uno"), time.Minute)

	got, ok := lc.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("uno"), got)
	assert.Equal(t, 1, lc.Len())
}

func TestLocalCacheDeleteAndClear(t *testing.T) {
	lc := NewLocalCache(4)

	lc.Set("a", []byte("one"), time.Minute)
	lc.Set("b", []byte("two"), time.Minute)

	lc.Delete("a")
	_, ok := lc.Get("a")
	assert.False(t, ok)

	lc.Clear()
	assert.Equal(t, 0, lc.Len())
}

func TestCacheServiceWithoutRedis(t *testing.T) {
	svc := NewCacheService(nil, 16, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := svc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, svc.Delete(ctx, "k"))
	got, err = svc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}
