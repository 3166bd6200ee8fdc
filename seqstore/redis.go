package seqstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares sequences across processes and survives restarts.
// With a TTL, idle counters expire; a record stamped before expiry then reads
// as stale and statestore deletes it.
type Redis struct {
	rdb redis.UniversalClient
	ns  string
	ttl time.Duration // 0 disables expiry
}

var _ SeqStore = (*Redis)(nil)

// NewRedis creates a Redis-backed sequence store. If ttl <= 0, counters do
// not expire.
func NewRedis(client redis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl}
}

func (s *Redis) key(k string) string { return "seq:" + s.ns + ":" + k }

func (s *Redis) Current(ctx context.Context, key string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis seq parse: %w", err)
	}
	return u, nil
}

// Next increments the counter and, with a TTL, refreshes its expiry.
// INCR + EXPIRE are pipelined in a single round-trip.
func (s *Redis) Next(ctx context.Context, key string) (uint64, error) {
	k := s.key(key)

	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, k).Result()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

// Cleanup is not applicable; Redis handles expiry if a TTL is set.
func (s *Redis) Cleanup(time.Duration) {}

// Close does not close the client; the caller owns it.
func (s *Redis) Close(context.Context) error { return nil }
