// Package ristretto backs statestore with an in-process dgraph-io/ristretto
// cache. Records are admitted by TinyLFU, so a Set may be dropped under
// pressure; statestore reports that as a rejected write.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/netsync/provider"
)

type Provider struct {
	c *rc.Cache
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // bytes when callers pass len(value) as cost
	BufferItems int64
	Metrics     bool
}

// DefaultConfig sizes the cache for roughly 10k sessions.
func DefaultConfig() Config {
	return Config{
		NumCounters: 100_000,
		MaxCost:     4 << 20,
		BufferItems: 64,
	}
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set stores value and waits for the write buffer to drain so the record is
// visible to the next Get. A non-positive cost is replaced by len(value).
func (p *Provider) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	if cost <= 0 {
		cost = int64(len(value))
	}
	if ttl < 0 {
		ttl = 0
	}
	ok := p.c.SetWithTTL(key, value, cost, ttl)
	p.c.Wait()
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters when Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
