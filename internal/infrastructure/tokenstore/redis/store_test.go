package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/erp-client/internal/core/tokenstore"
	redisstore "github.com/unifiedui/erp-client/internal/infrastructure/tokenstore/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, tokenstore.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	store, err := redisstore.NewStore(redisstore.Config{
		Host: mr.Host(),
		Port: mr.Port(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})

	return mr, store
}

func TestNewStore_ConnectionFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	store, err := redisstore.NewStore(redisstore.Config{Host: host, Port: port})
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestStore_SetAndGet(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "erp-client:refresh_token", []byte("rt-1")))

	value, err := store.Get(ctx, "erp-client:refresh_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("rt-1"), value)

	// No TTL is applied to persisted credentials.
	assert.Zero(t, mr.TTL("erp-client:refresh_token"))
}

func TestStore_GetMissing(t *testing.T) {
	_, store := setupMiniredis(t)

	value, err := store.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestStore_SetOverwrites(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("old")))
	require.NoError(t, store.Set(ctx, "k", []byte("new")))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}

func TestStore_Delete(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	deleted, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_Ping(t *testing.T) {
	mr, store := setupMiniredis(t)

	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
