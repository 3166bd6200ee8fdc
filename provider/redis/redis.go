// Package redis backs statestore with a shared Redis, so a master and
// followers on different hosts see the same session records.
//
// A record is one SET per session with the store TTL; statestore does not
// refresh it on read, so a session that stops publishing ages out. Sequence
// counters live beside the records in seqstore.Redis and are not touched here.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/netsync/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Config struct {
	Client goredis.UniversalClient

	// Prefix is prepended to every record key, e.g. "rig-2:" when several
	// deployments share one database.
	Prefix string

	// MaxRecordSize declines larger writes (Set reports ok=false, which
	// statestore surfaces as ErrRejected). 0 means no limit.
	MaxRecordSize int

	// CloseClient closes Client on Close. Set it only when the provider
	// owns the client exclusively.
	CloseClient bool
}

type Redis struct {
	rdb         goredis.UniversalClient
	prefix      string
	maxRecord   int
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{
		rdb:         cfg.Client,
		prefix:      cfg.Prefix,
		maxRecord:   cfg.MaxRecordSize,
		closeClient: cfg.CloseClient,
	}, nil
}

func (p *Redis) key(k string) string { return p.prefix + k }

// Get returns the record under key; a missing key is a miss, not an error.
func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rec, err := p.rdb.Get(ctx, p.key(key)).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return rec, true, nil
}

// Set stores rec with ttl. ttl <= 0 keeps the record until it is deleted or
// replaced. cost is unused; Redis has no admission policy.
func (p *Redis) Set(ctx context.Context, key string, rec []byte, _ int64, ttl time.Duration) (bool, error) {
	if p.maxRecord > 0 && len(rec) > p.maxRecord {
		return false, nil
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := p.rdb.Set(ctx, p.key(key), rec, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, p.key(key)).Err()
}

// Close closes the client when the provider owns it. Repeated calls are
// no-ops.
func (p *Redis) Close(context.Context) error {
	if !p.closeClient {
		return nil
	}
	err := p.rdb.Close()
	if errors.Is(err, goredis.ErrClosed) {
		return nil
	}
	return err
}
