package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/codec"
	pr "github.com/unkn0wn-root/netsync/provider"
	"github.com/unkn0wn-root/netsync/provider/bigcache"
	rprov "github.com/unkn0wn-root/netsync/provider/redis"
	"github.com/unkn0wn-root/netsync/provider/ristretto"
	"github.com/unkn0wn-root/netsync/seqstore"
	"github.com/unkn0wn-root/netsync/statestore"
)

// A State encodes to under 64 bytes in every codec; anything much larger
// read back from a shared store is not ours.
const (
	maxStatePayload = 128
	maxStateRecord  = 256
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}

// openStore builds the state store named by cfg. The redis provider shares
// one client between records and sequences so followers on other hosts see
// the same counters.
func openStore(cfg Config, log netsync.Logger) (*statestore.Store, error) {
	c, err := codec.ForState(cfg.Store.Codec)
	if err != nil {
		return nil, err
	}
	opts := statestore.Options{
		Namespace: cfg.Store.Namespace,
		Codec:     codec.Limit[netsync.State]{Inner: c, MaxDecode: maxStatePayload},
		TTL:       cfg.Store.TTL,
		Logger:    log,
	}

	var p pr.Provider
	switch cfg.Store.Provider {
	case "ristretto":
		p, err = ristretto.New(ristretto.DefaultConfig())
	case "bigcache":
		life := cfg.Store.TTL
		if life <= 0 {
			life = 24 * time.Hour
		}
		p, err = bigcache.New(bigcache.Config{LifeWindow: life})
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		p, err = rprov.New(rprov.Config{
			Client:        client,
			Prefix:        cfg.Redis.Prefix,
			MaxRecordSize: maxStateRecord,
			CloseClient:   true,
		})
		opts.Seq = seqstore.NewRedis(client, cfg.Store.Namespace, 0)
	default:
		err = fmt.Errorf("unsupported store provider %q", cfg.Store.Provider)
	}
	if err != nil {
		return nil, err
	}
	opts.Provider = p

	s, err := statestore.New(opts)
	if err != nil {
		_ = p.Close(context.Background())
		return nil, err
	}
	return s, nil
}
