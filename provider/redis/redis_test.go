package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisProvider(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	p, err := New(Config{Client: rdb, CloseClient: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(ctx) })

	_, ok, err := p.Get(ctx, "state:ns:a")
	require.NoError(t, err)
	assert.False(t, ok)

	v := []byte{0x00, 0xFF, 'x'}
	ok, err = p.Set(ctx, "state:ns:a", v, 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("state:ns:a"))

	got, ok, err := p.Get(ctx, "state:ns:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, v, got)

	require.NoError(t, p.Del(ctx, "state:ns:a"))
	assert.False(t, mr.Exists("state:ns:a"))

	ok, err = p.Set(ctx, "state:ns:b", v, 0, -1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), mr.TTL("state:ns:b"))
}

func TestRedisProviderCloseIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), CloseClient: true})
	require.NoError(t, err)
	require.NoError(t, p.Close(context.Background()))
	require.NoError(t, p.Close(context.Background()))
}

func TestRedisProviderNilClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

func TestRedisProviderPrefixAndRecordLimit(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	p, err := New(Config{Client: rdb, Prefix: "rig-2:", MaxRecordSize: 8})
	require.NoError(t, err)

	ok, err := p.Set(ctx, "state:ns:a", []byte("small"), 0, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("rig-2:state:ns:a"))
	assert.False(t, mr.Exists("state:ns:a"))

	got, ok, err := p.Get(ctx, "state:ns:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("small"), got)

	ok, err = p.Set(ctx, "state:ns:b", make([]byte, 9), 0, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("rig-2:state:ns:b"))

	require.NoError(t, p.Del(ctx, "state:ns:a"))
	assert.False(t, mr.Exists("rig-2:state:ns:a"))

	// client is not owned, so Close leaves it usable
	require.NoError(t, p.Close(ctx))
	require.NoError(t, rdb.Ping(ctx).Err())
}
