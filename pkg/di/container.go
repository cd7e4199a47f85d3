// Package di wires the catalog query object graph: cache, event bus,
// stores, services and analytics subscribers.
package di

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/analytics"
	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/eventbus"
	"github.com/goliatone/go-catalog-query/internal/clock"
	"github.com/goliatone/go-catalog-query/resilience"
	"github.com/goliatone/go-catalog-query/service"
	"github.com/goliatone/go-catalog-query/store"
)

// Options configures the container. Zero values fall back to defaults.
type Options struct {
	Cache           cache.Config
	Resilience      resilience.Config
	AccessorTimeout time.Duration
	Logger          zerolog.Logger
	Clock           clock.Clock
}

// Container holds singleton instances of every component and hands out
// the wired services.
type Container struct {
	cacheStore    *cache.Store
	keySerializer cache.KeySerializer
	bus           *eventbus.Bus
	registry      *resilience.Registry

	productStore  *store.ProductStore
	categoryStore *store.CategoryStore
	imageStore    *store.ImageStore

	productViews  *analytics.ProductViewCounter
	categoryViews *analytics.CategoryViewCounter
	audit         *analytics.AuditTrail

	products   *service.ProductService
	categories *service.CategoryService
	images     *service.ProductImageService
}

// NewContainer builds the full object graph: cache backend and store,
// event bus with the analytics subscribers attached, in-memory stores
// and the three query services registered with the breaker registry.
func NewContainer(opts Options) (*Container, error) {
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Cache.Capacity == 0 {
		opts.Cache = cache.DefaultConfig()
	}
	if opts.Resilience.FailureThreshold == 0 {
		opts.Resilience = resilience.DefaultConfig()
	}

	backend, err := cache.NewBackend(opts.Cache, opts.Clock)
	if err != nil {
		return nil, err
	}

	c := &Container{
		cacheStore:    cache.NewStore(backend, opts.Logger),
		keySerializer: cache.NewDefaultKeySerializer(),
		bus:           eventbus.New(opts.Logger),
		registry:      resilience.NewRegistry(),
		productStore:  store.NewProductStore(),
		categoryStore: store.NewCategoryStore(),
		imageStore:    store.NewImageStore(),
		productViews:  analytics.NewProductViewCounter(),
		categoryViews: analytics.NewCategoryViewCounter(),
	}
	c.audit = analytics.NewAuditTrail(opts.Logger)

	c.bus.Subscribe(c.productViews)
	c.bus.Subscribe(c.categoryViews)
	c.bus.Subscribe(c.audit)

	c.products = service.NewProductService(
		c.productStore, c.cacheStore, c.keySerializer, c.bus,
		opts.Resilience, opts.AccessorTimeout, opts.Logger, c.registry)
	c.categories = service.NewCategoryService(
		c.categoryStore, c.cacheStore, c.keySerializer,
		opts.Resilience, opts.AccessorTimeout, opts.Logger, c.registry)
	c.images = service.NewProductImageService(
		c.imageStore, c.cacheStore, c.keySerializer,
		opts.Resilience, opts.AccessorTimeout, opts.Logger, c.registry)

	return c, nil
}

// NewContainerWithDefaults builds a container with default cache and
// resilience settings.
func NewContainerWithDefaults(logger zerolog.Logger) (*Container, error) {
	return NewContainer(Options{Logger: logger})
}

// Products returns the product query service.
func (c *Container) Products() *service.ProductService { return c.products }

// Categories returns the category query service.
func (c *Container) Categories() *service.CategoryService { return c.categories }

// Images returns the product image query service.
func (c *Container) Images() *service.ProductImageService { return c.images }

// ProductStore returns the backing product store for seeding.
func (c *Container) ProductStore() *store.ProductStore { return c.productStore }

// CategoryStore returns the backing category store for seeding.
func (c *Container) CategoryStore() *store.CategoryStore { return c.categoryStore }

// ImageStore returns the backing image store for seeding.
func (c *Container) ImageStore() *store.ImageStore { return c.imageStore }

// ProductViews returns the per-product view counter.
func (c *Container) ProductViews() *analytics.ProductViewCounter { return c.productViews }

// CategoryViews returns the per-category view counter.
func (c *Container) CategoryViews() *analytics.CategoryViewCounter { return c.categoryViews }

// AuditTrail returns the audit subscriber.
func (c *Container) AuditTrail() *analytics.AuditTrail { return c.audit }

// Breakers returns the circuit breaker registry.
func (c *Container) Breakers() *resilience.Registry { return c.registry }

// CacheStore returns the shared cache store.
func (c *Container) CacheStore() *cache.Store { return c.cacheStore }

// KeySerializer returns the shared cache key serializer.
func (c *Container) KeySerializer() cache.KeySerializer { return c.keySerializer }

// Bus returns the view event bus.
func (c *Container) Bus() *eventbus.Bus { return c.bus }

// Close stops the event bus and waits for in-flight deliveries.
func (c *Container) Close() {
	c.bus.Close()
}
