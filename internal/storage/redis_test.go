package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisKV_PrefixedRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	kv, err := NewRedisKV(ctx, "redis://"+mr.Addr(), "wl:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	_, ok, err := kv.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "theme", "dark"))
	v, ok, err := kv.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	raw, err := mr.Get("wl:theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)

	require.NoError(t, kv.Set(ctx, "language", "hi"))
	require.NoError(t, kv.Delete(ctx, "theme", "language"))
	assert.False(t, mr.Exists("wl:theme"))
	assert.False(t, mr.Exists("wl:language"))
	require.NoError(t, kv.Delete(ctx))
	require.NoError(t, kv.Ping(ctx))
}

func TestRedisKV_BadURL(t *testing.T) {
	_, err := NewRedisKV(context.Background(), "not a url", "")
	require.Error(t, err)
}

func TestRedisKV_StoreMigratesLegacyKey(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("wl:complaints", `[{"id":"DLG-2025-00007"}]`))

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s, err := Open(ctx, NewRedisKVFromClient(client, "wl:"), zap.NewNop().Sugar())
	require.NoError(t, err)

	cs := s.GetComplaints(ctx)
	require.Len(t, cs, 1)
	assert.Equal(t, "DLG-2025-00007", cs[0].ID)
	assert.False(t, mr.Exists("wl:complaints"))
	assert.True(t, mr.Exists("wl:delhiComplaints"))
}
