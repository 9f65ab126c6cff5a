package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/lead-messenger/internal/cache"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestMessageIndex(t *testing.T) {
	mr, client := setupRedis(t)
	idx := cache.NewMessageIndex(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, idx.Put(ctx, "wamid.1", 42))

	id, ok, err := idx.Lookup(ctx, "wamid.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok, err = idx.Lookup(ctx, "wamid.unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Hour)
	_, ok, err = idx.Lookup(ctx, "wamid.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMessageIndex_CorruptEntry(t *testing.T) {
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set("dispatch:provider:wamid.bad", "not-a-number"))

	_, _, err := cache.NewMessageIndex(client, time.Hour).Lookup(context.Background(), "wamid.bad")
	assert.Error(t, err)
}

func TestMessageIndex_RedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err = cache.NewMessageIndex(client, time.Hour).Put(context.Background(), "wamid.1", 1)
	assert.Error(t, err)
}

func TestLocker_TryLock(t *testing.T) {
	mr, client := setupRedis(t)
	locker := cache.NewLocker(client)
	ctx := context.Background()

	release, ok, err := locker.TryLock(ctx, "retry-sweep", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(ctx, "retry-sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must not get the lock")

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("lock:retry-sweep"))

	_, ok, err = locker.TryLock(ctx, "retry-sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocker_ReleaseAfterExpiryKeepsNewOwner(t *testing.T) {
	mr, client := setupRedis(t)
	locker := cache.NewLocker(client)
	ctx := context.Background()

	staleRelease, ok, err := locker.TryLock(ctx, "sequence-sweep", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = locker.TryLock(ctx, "sequence-sweep", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists("lock:sequence-sweep"), "stale holder must not delete the new lock")
}
