package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/unkn0wn-root/netsync/codec"
)

type Config struct {
	Session  string
	LogLevel string
	Store    StoreConfig
	Redis    RedisConfig
}

type StoreConfig struct {
	Provider  string // ristretto | bigcache | redis
	Namespace string
	Codec     string // proto | json | cbor | msgpack
	TTL       time.Duration
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string // prepended to record keys
}

// netsyncctl config.toml key mapping.
type fileConfig struct {
	Session  string `toml:"session"`
	LogLevel string `toml:"log_level"`
	Store    struct {
		Provider  string `toml:"provider"`
		Namespace string `toml:"namespace"`
		Codec     string `toml:"codec"`
		TTL       string `toml:"ttl"`
	} `toml:"store"`
	Redis struct {
		Addr     string `toml:"addr"`
		Username string `toml:"username"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
		Prefix   string `toml:"prefix"`
	} `toml:"redis"`
}

func defaultConfig() Config {
	return Config{
		Session:  uuid.NewString(),
		LogLevel: "warn",
		Store: StoreConfig{
			Provider:  "ristretto",
			Namespace: "netsync",
			Codec:     codec.NameProto,
			TTL:       24 * time.Hour,
		},
		Redis: RedisConfig{Addr: "127.0.0.1:6379"},
	}
}

// loadConfig overlays keys defined in the TOML file at path on the defaults.
// An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load netsyncctl config: %w", err)
	}

	if meta.IsDefined("session") {
		cfg.Session = strings.TrimSpace(raw.Session)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("store", "provider") {
		cfg.Store.Provider = strings.ToLower(strings.TrimSpace(raw.Store.Provider))
	}
	if meta.IsDefined("store", "namespace") {
		cfg.Store.Namespace = strings.TrimSpace(raw.Store.Namespace)
	}
	if meta.IsDefined("store", "codec") {
		cfg.Store.Codec = strings.ToLower(strings.TrimSpace(raw.Store.Codec))
	}
	if meta.IsDefined("store", "ttl") {
		ttl, err := time.ParseDuration(strings.TrimSpace(raw.Store.TTL))
		if err != nil {
			return Config{}, fmt.Errorf("load netsyncctl config: store.ttl: %w", err)
		}
		cfg.Store.TTL = ttl
	}
	if meta.IsDefined("redis", "addr") {
		cfg.Redis.Addr = strings.TrimSpace(raw.Redis.Addr)
	}
	if meta.IsDefined("redis", "username") {
		cfg.Redis.Username = raw.Redis.Username
	}
	if meta.IsDefined("redis", "password") {
		cfg.Redis.Password = raw.Redis.Password
	}
	if meta.IsDefined("redis", "db") {
		cfg.Redis.DB = raw.Redis.DB
	}
	if meta.IsDefined("redis", "prefix") {
		cfg.Redis.Prefix = strings.TrimSpace(raw.Redis.Prefix)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load netsyncctl config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Session == "" {
		return fmt.Errorf("session must not be empty")
	}
	if c.Store.Namespace == "" {
		return fmt.Errorf("store.namespace must not be empty")
	}
	switch c.Store.Provider {
	case "ristretto", "bigcache", "redis":
	default:
		return fmt.Errorf("unsupported store.provider %q (expected ristretto, bigcache or redis)", c.Store.Provider)
	}
	if _, err := codec.ForState(c.Store.Codec); err != nil {
		return err
	}
	if c.Store.Provider == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required for the redis provider")
	}
	return nil
}
