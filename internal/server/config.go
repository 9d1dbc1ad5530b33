package server

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Config holds the server configuration, loaded from a TOML file.
//
// Example:
//
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"        # "none", "file", or "redis"
//	redis_addr = "localhost:6379"
//	namespace = "prod:"
//
//	[store]
//	backend = "mongo"        # "memory" or "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "mosaic"
type Config struct {
	Addr  string      `toml:"addr"`
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`        // file backend
	RedisAddr string `toml:"redis_addr"` // redis backend
	// Namespace prefixes every cache key, isolating deployments that
	// share a Redis instance.
	Namespace string `toml:"namespace"`
}

// StoreConfig selects and configures the layout store backend.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns a config suitable for local development: in-memory
// store, no cache, port 8080.
func DefaultConfig() Config {
	return Config{
		Addr:  ":8080",
		Cache: CacheConfig{Backend: "none"},
		Store: StoreConfig{Backend: "memory", MongoDatabase: "mosaic"},
	}
}

// LoadConfig reads a TOML config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", "none", "file":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be none, file, or redis)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case "", "memory":
	case "mongo":
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown store backend %q (must be memory or mongo)", c.Store.Backend)
	}
	return nil
}
