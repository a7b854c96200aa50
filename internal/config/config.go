// Package config loads the binder configuration from TOML with BINDER_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/gateways/database"
	"github.com/disgoorg/card-binder/internal/gateways/storage"
	"github.com/disgoorg/card-binder/internal/logger"
)

const EnvPrefix = "BINDER_"

type Backend string

const (
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendMongo    Backend = "mongo"
	BackendSpaces   Backend = "spaces"
	BackendPostgres Backend = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log     logger.Config     `toml:"log" envPrefix:"LOG_"`
	Server  ServerConfig      `toml:"server" envPrefix:"SERVER_"`
	Storage StorageConfig     `toml:"storage" envPrefix:"STORAGE_"`
	DB      database.DBConfig `toml:"db" envPrefix:"DB_"`
	Lookup  LookupConfig      `toml:"lookup" envPrefix:"LOOKUP_"`
	Notify  NotifyConfig      `toml:"notify" envPrefix:"NOTIFY_"`
}

type ServerConfig struct {
	Addr             string `toml:"addr" env:"ADDR"`
	CORSOrigins      string `toml:"cors_origins" env:"CORS_ORIGINS"`
	SessionCacheSize int    `toml:"session_cache_size" env:"SESSION_CACHE_SIZE"`
	ShutdownSeconds  int    `toml:"shutdown_seconds" env:"SHUTDOWN_SECONDS"`
	// RateLimit caps intake requests per client per minute. 0 disables it.
	RateLimit int `toml:"rate_limit" env:"RATE_LIMIT"`
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownSeconds) * time.Second
}

type StorageConfig struct {
	Backend       Backend              `toml:"backend" env:"BACKEND"`
	Key           string               `toml:"key" env:"KEY"`
	Dir           string               `toml:"dir" env:"DIR"`
	RedisURL      string               `toml:"redis_url" env:"REDIS_URL"`
	RedisPrefix   string               `toml:"redis_prefix" env:"REDIS_PREFIX"`
	MongoURI      string               `toml:"mongo_uri" env:"MONGO_URI"`
	MongoDatabase string               `toml:"mongo_database" env:"MONGO_DATABASE"`
	Spaces        storage.SpacesConfig `toml:"spaces" envPrefix:"SPACES_"`
}

type LookupConfig struct {
	ScryfallURL   string `toml:"scryfall_url" env:"SCRYFALL_URL"`
	PokemonTCGURL string `toml:"pokemontcg_url" env:"POKEMONTCG_URL"`
	YGOProDeckURL string `toml:"ygoprodeck_url" env:"YGOPRODECK_URL"`
	// TimeoutMS of 0 leaves requests bounded only by the transport.
	TimeoutMS int `toml:"timeout_ms" env:"TIMEOUT_MS"`
	CacheSize int `toml:"cache_size" env:"CACHE_SIZE"`
}

func (c LookupConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

type NotifyConfig struct {
	DiscordWebhookURL string `toml:"discord_webhook_url" env:"DISCORD_WEBHOOK_URL"`
	FeedSize          int    `toml:"feed_size" env:"FEED_SIZE"`
}

func Default() *Config {
	return &Config{
		Log: logger.Config{
			Level:      slog.LevelInfo,
			Format:     "pretty",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Addr:             ":8080",
			CORSOrigins:      "*",
			SessionCacheSize: 128,
			ShutdownSeconds:  10,
			RateLimit:        120,
		},
		Storage: StorageConfig{
			Backend:       BackendFile,
			Key:           collection.DefaultKey,
			Dir:           "data",
			RedisURL:      "redis://localhost:6379/0",
			RedisPrefix:   "binder:",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "binder",
		},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "binder",
			PoolSize: 5,
		},
		Lookup: LookupConfig{
			ScryfallURL:   lookup.DefaultScryfallURL,
			PokemonTCGURL: lookup.DefaultPokemonTCGURL,
			YGOProDeckURL: lookup.DefaultYGOProDeckURL,
			CacheSize:     lookup.DefaultCacheSize,
		},
		Notify: NotifyConfig{
			FeedSize: 50,
		},
	}
}

// LoadConfig reads path over the defaults and then applies environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("No config file, using defaults", slog.String("type", "sys"), slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendPostgres:
	case BackendSpaces:
		if c.Storage.Spaces.Bucket == "" {
			errs = append(errs, errors.New("storage.spaces.bucket is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage.key is required"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	if c.Lookup.TimeoutMS < 0 {
		errs = append(errs, errors.New("lookup.timeout_ms must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
