package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/resilience"
)

// Config holds the full application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Resilience ResilienceConfig `mapstructure:"resilience"`
}

// AppConfig identifies the running service.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, staging, production
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxPageSize     int           `mapstructure:"max_page_size"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// CacheConfig configures the in-process cache and its per-class TTLs.
type CacheConfig struct {
	Capacity           int           `mapstructure:"capacity"`
	NumShards          int           `mapstructure:"num_shards"`
	EvictionPercentage int           `mapstructure:"eviction_percentage"`
	EntityTTL          time.Duration `mapstructure:"entity_ttl"`
	ListingTTL         time.Duration `mapstructure:"listing_ttl"`
	CategoryListingTTL time.Duration `mapstructure:"category_listing_ttl"`
	RecommendationTTL  time.Duration `mapstructure:"recommendation_ttl"`
	ImagesTTL          time.Duration `mapstructure:"images_ttl"`
}

// ResilienceConfig configures retry and circuit breaker behavior shared
// by all read pipelines.
type ResilienceConfig struct {
	MaxRetries       uint64        `mapstructure:"max_retries"`
	InitialInterval  time.Duration `mapstructure:"initial_interval"`
	MaxInterval      time.Duration `mapstructure:"max_interval"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	Cooldown         time.Duration `mapstructure:"cooldown"`
	HalfOpenMaxCalls uint32        `mapstructure:"half_open_max_calls"`
	AccessorTimeout  time.Duration `mapstructure:"accessor_timeout"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// CacheSettings converts the loaded cache section into the cache
// package's config.
func (c *Config) CacheSettings() cache.Config {
	return cache.Config{
		Capacity:           c.Cache.Capacity,
		NumShards:          c.Cache.NumShards,
		EvictionPercentage: c.Cache.EvictionPercentage,
		TTL: map[cache.Class]time.Duration{
			cache.ClassEntity:          c.Cache.EntityTTL,
			cache.ClassListing:         c.Cache.ListingTTL,
			cache.ClassCategoryListing: c.Cache.CategoryListingTTL,
			cache.ClassRecommendation:  c.Cache.RecommendationTTL,
			cache.ClassImages:          c.Cache.ImagesTTL,
		},
	}
}

// ResilienceSettings converts the loaded resilience section into the
// resilience package's config.
func (c *Config) ResilienceSettings() resilience.Config {
	return resilience.Config{
		MaxRetries:       c.Resilience.MaxRetries,
		InitialInterval:  c.Resilience.InitialInterval,
		MaxInterval:      c.Resilience.MaxInterval,
		FailureThreshold: c.Resilience.FailureThreshold,
		Cooldown:         c.Resilience.Cooldown,
		HalfOpenMaxCalls: c.Resilience.HalfOpenMaxCalls,
	}
}

// Load reads configuration from file and environment. A missing config
// file is not an error, defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "catalog-query")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// Server
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_page_size", 50)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Cache
	v.SetDefault("cache.capacity", 10000)
	v.SetDefault("cache.num_shards", 64)
	v.SetDefault("cache.eviction_percentage", 10)
	v.SetDefault("cache.entity_ttl", "2h")
	v.SetDefault("cache.listing_ttl", "20m")
	v.SetDefault("cache.category_listing_ttl", "1h")
	v.SetDefault("cache.recommendation_ttl", "1h")
	v.SetDefault("cache.images_ttl", "2h")

	// Resilience
	v.SetDefault("resilience.max_retries", 2)
	v.SetDefault("resilience.initial_interval", "100ms")
	v.SetDefault("resilience.max_interval", "2s")
	v.SetDefault("resilience.failure_threshold", 5)
	v.SetDefault("resilience.cooldown", "30s")
	v.SetDefault("resilience.half_open_max_calls", 1)
	v.SetDefault("resilience.accessor_timeout", "2s")
}
