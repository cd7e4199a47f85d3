// Package cacheinfra adapts sturdyc to the class-partitioned cache backend
// the cache package exposes.
package cacheinfra

import (
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-catalog-query/internal/clock"
)

// Config holds the settings for the sturdyc-backed cache.
type Config struct {
	// Capacity is the maximum number of entries per cache class.
	Capacity int

	// NumShards controls sharding for concurrent access within a class.
	NumShards int

	// EvictionPercentage is the share of entries evicted when a class
	// reaches capacity. Must be between 1 and 100.
	EvictionPercentage int

	// TTL maps each cache class name to its time-to-live. Every class the
	// application uses must be present.
	TTL map[string]time.Duration
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	if len(c.TTL) == 0 {
		return &ConfigError{Field: "TTL", Message: "must define at least one cache class"}
	}
	for class, ttl := range c.TTL {
		if ttl <= 0 {
			return &ConfigError{Field: "TTL." + class, Message: "must be greater than 0"}
		}
	}
	return nil
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// entry wraps a cached value with its store time so freshness can be
// re-checked against the injected clock.
type entry struct {
	value    any
	storedAt time.Time
}

// SturdycService implements the cache backend with one sturdyc client per
// cache class, giving every class its own TTL (sturdyc TTLs are set per
// client). Freshness is additionally checked against the injected clock on
// every read, which keeps expiry deterministic under a simulated clock; in
// production both mechanisms agree.
type SturdycService struct {
	clients map[string]*sturdyc.Client[entry]
	ttls    map[string]time.Duration
	clk     clock.Clock
}

// NewSturdycService validates cfg and builds the per-class clients. A nil
// clk selects the system clock.
func NewSturdycService(cfg Config, clk clock.Clock) (*SturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.NewReal()
	}

	clients := make(map[string]*sturdyc.Client[entry], len(cfg.TTL))
	ttls := make(map[string]time.Duration, len(cfg.TTL))
	for class, ttl := range cfg.TTL {
		clients[class] = sturdyc.New[entry](cfg.Capacity, cfg.NumShards, ttl, cfg.EvictionPercentage)
		ttls[class] = ttl
	}

	return &SturdycService{clients: clients, ttls: ttls, clk: clk}, nil
}

// Get returns the fresh value stored for key within class. Stale entries
// are deleted and reported as a miss. An unknown class is always a miss.
func (s *SturdycService) Get(class, key string) (any, bool) {
	client, ok := s.clients[class]
	if !ok {
		return nil, false
	}
	e, ok := client.Get(key)
	if !ok {
		return nil, false
	}
	if s.clk.Now().Sub(e.storedAt) >= s.ttls[class] {
		client.Delete(key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key within class, stamped with the current time.
// Unknown classes are dropped silently; the cache fails soft by contract.
func (s *SturdycService) Set(class, key string, value any) {
	client, ok := s.clients[class]
	if !ok {
		return
	}
	client.Set(key, entry{value: value, storedAt: s.clk.Now()})
}

// Delete removes key from class.
func (s *SturdycService) Delete(class, key string) {
	if client, ok := s.clients[class]; ok {
		client.Delete(key)
	}
}

// Keys lists the keys currently held for class. Intended for tests and
// operational inspection.
func (s *SturdycService) Keys(class string) []string {
	client, ok := s.clients[class]
	if !ok {
		return nil
	}
	return client.ScanKeys()
}
