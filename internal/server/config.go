package server

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vocamap/vocamap/pkg/layout"
)

// Config holds the server configuration, loaded from a TOML file.
//
// Example:
//
//	addr = ":8080"
//
//	[store]
//	type = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "vocamap"
//
//	[cache]
//	type = "redis"
//	redis_addr = "localhost:6379"
//
//	[geometry]
//	grid_max_columns = 5
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	Store StoreConfig `toml:"store"`
	Cache CacheConfig `toml:"cache"`

	// Geometry overrides the default layout geometry when set.
	Geometry *layout.Config `toml:"geometry"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	// Type is one of "memory", "file", "mongo".
	Type string `toml:"type"`

	// Dir is the base directory for the file store.
	Dir string `toml:"dir"`

	// MongoURI and MongoDatabase configure the mongo store.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Type is one of "null", "file", "redis".
	Type string `toml:"type"`

	// Dir is the base directory for the file cache.
	Dir string `toml:"dir"`

	// Redis connection settings.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// DefaultConfig returns a config suitable for local development:
// in-memory store, no cache, port 8080.
func DefaultConfig() Config {
	return Config{
		Addr:  ":8080",
		Store: StoreConfig{Type: "memory"},
		Cache: CacheConfig{Type: "null"},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// Environment variables override file values last.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides connection settings from the environment, so
// deployments can keep credentials out of the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("VOCAMAP_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("VOCAMAP_MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("VOCAMAP_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("VOCAMAP_REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
}

// Validate checks backend type selections.
func (c Config) Validate() error {
	switch c.Store.Type {
	case "memory", "file":
	case "mongo":
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store.mongo_uri is required for the mongo store")
		}
		if c.Store.MongoDatabase == "" {
			return fmt.Errorf("store.mongo_database is required for the mongo store")
		}
	default:
		return fmt.Errorf("invalid store.type: %q (must be one of: memory, file, mongo)", c.Store.Type)
	}

	switch c.Cache.Type {
	case "null", "file":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("invalid cache.type: %q (must be one of: null, file, redis)", c.Cache.Type)
	}

	return nil
}
