package cache

import (
	"time"

	"github.com/goliatone/go-catalog-query/internal/cacheinfra"
	"github.com/goliatone/go-catalog-query/internal/clock"
)

// Class identifies a logical cache class. Each class carries its own TTL:
// single-entity lookups live longest, listings over volatile filters live
// shortest.
type Class string

const (
	// ClassEntity caches single entities fetched by id or slug.
	ClassEntity Class = "entity"
	// ClassListing caches general listings, including filtered ones.
	ClassListing Class = "listing"
	// ClassCategoryListing caches listings scoped to one category.
	ClassCategoryListing Class = "category_listing"
	// ClassRecommendation caches same-category recommendation pages.
	ClassRecommendation Class = "recommendation"
	// ClassImages caches image listings per product.
	ClassImages Class = "images"
)

// Classes returns every known cache class.
func Classes() []Class {
	return []Class{ClassEntity, ClassListing, ClassCategoryListing, ClassRecommendation, ClassImages}
}

// Config exposes cache configuration for consumers of the cache package.
// Entries expire by TTL only; there is no active invalidation on writes.
// That staleness-for-performance trade-off is deliberate and documented at
// the service boundary.
type Config struct {
	Capacity           int
	NumShards          int
	EvictionPercentage int
	TTL                map[Class]time.Duration
}

// DefaultConfig returns a Config populated with the default TTL table.
func DefaultConfig() Config {
	return Config{
		Capacity:           10_000,
		NumShards:          64,
		EvictionPercentage: 10,
		TTL: map[Class]time.Duration{
			ClassEntity:          2 * time.Hour,
			ClassListing:         20 * time.Minute,
			ClassCategoryListing: time.Hour,
			ClassRecommendation:  time.Hour,
			ClassImages:          2 * time.Hour,
		},
	}
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// ClassTTL returns the configured TTL for class, or zero when unknown.
func (c Config) ClassTTL(class Class) time.Duration {
	return c.TTL[class]
}

// NewBackend constructs the default sturdyc-backed cache backend. A nil clk
// selects the system clock.
func NewBackend(cfg Config, clk clock.Clock) (Backend, error) {
	svc, err := cacheinfra.NewSturdycService(cfg.toInternal(), clk)
	if err != nil {
		return nil, err
	}
	return backendAdapter{svc: svc}, nil
}

func (c Config) toInternal() cacheinfra.Config {
	ttl := make(map[string]time.Duration, len(c.TTL))
	for class, d := range c.TTL {
		ttl[string(class)] = d
	}
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		EvictionPercentage: c.EvictionPercentage,
		TTL:                ttl,
	}
}

// backendAdapter bridges the class-typed Backend interface onto the
// string-keyed infra service.
type backendAdapter struct {
	svc *cacheinfra.SturdycService
}

func (b backendAdapter) Get(class Class, key string) (any, bool) {
	return b.svc.Get(string(class), key)
}

func (b backendAdapter) Set(class Class, key string, value any) {
	b.svc.Set(string(class), key, value)
}

func (b backendAdapter) Delete(class Class, key string) {
	b.svc.Delete(string(class), key)
}
