package tokencache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestSetGetRoundtrip(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	cache.Set(ctx, "tok-1", "uid-1")
	assert.Equal(t, "uid-1", cache.Get(ctx, "tok-1"))
	assert.Equal(t, "", cache.Get(ctx, "tok-2"))
}

func TestEntriesExpire(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	cache.Set(ctx, "tok-1", "uid-1")
	mr.FastForward(defaultTTL + time.Second)

	assert.Equal(t, "", cache.Get(ctx, "tok-1"))
}

func TestRawTokenNeverStoredAsKey(t *testing.T) {
	cache, mr := newCache(t)
	cache.Set(context.Background(), "super-secret-token", "uid-1")

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "super-secret-token")
	assert.Contains(t, keys[0], keyPrefix)
}

func TestUnreachableRedisDegradesToMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	cache.Set(context.Background(), "tok-1", "uid-1")
	mr.Close()

	// Errors are misses: the middleware falls back to full verification.
	assert.Equal(t, "", cache.Get(context.Background(), "tok-1"))
}
