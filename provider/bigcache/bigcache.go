// Package bigcache backs statestore with allegro/bigcache. BigCache has no
// per-entry TTL; every record lives for Config.LifeWindow.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/netsync/provider"
)

type Provider struct {
	c *bc.BigCache
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	LifeWindow         time.Duration // required
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
	Shards             int // power of two
}

func New(cfg Config) (*Provider, error) {
	if cfg.LifeWindow <= 0 {
		return nil, errors.New("bigcache: LifeWindow must be positive")
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	// state records are ~40 bytes
	conf.MaxEntrySize = 64
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	// BigCache does not support per-entry TTL; uses global LifeWindow.
	return true, p.c.Set(key, value)
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
