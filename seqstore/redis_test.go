package seqstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisNextAndCurrent(t *testing.T) {
	ctx := context.Background()
	_, rdb := newRedis(t)
	s := NewRedis(rdb, "studio", 0)

	cur, err := s.Current(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cur)

	for want := uint64(1); want <= 3; want++ {
		got, err := s.Next(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	cur, err = s.Current(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cur)
}

func TestRedisSharedBetweenInstances(t *testing.T) {
	ctx := context.Background()
	_, rdb := newRedis(t)
	a := NewRedis(rdb, "ns", 0)
	b := NewRedis(rdb, "ns", 0)
	other := NewRedis(rdb, "other", 0)

	_, err := a.Next(ctx, "s")
	require.NoError(t, err)
	got, err := b.Current(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)

	got, err = other.Current(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got, "namespaces must not share counters")
}

func TestRedisTTLExpiresCounters(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	s := NewRedis(rdb, "ns", time.Minute)

	_, err := s.Next(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("seq:ns:s"))

	mr.FastForward(2 * time.Minute)
	got, err := s.Current(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestRedisCurrentRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	s := NewRedis(rdb, "ns", 0)

	require.NoError(t, mr.Set("seq:ns:s", "not-a-number"))
	_, err := s.Current(ctx, "s")
	require.Error(t, err)
}

func TestRedisErrorsWhenServerDown(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	s := NewRedis(rdb, "ns", 0)
	mr.Close()

	_, err := s.Next(ctx, "s")
	require.Error(t, err)
}
