package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/catalog"
	"github.com/goliatone/go-catalog-query/eventbus"
	"github.com/goliatone/go-catalog-query/internal/reqid"
	"github.com/goliatone/go-catalog-query/pagination"
	"github.com/goliatone/go-catalog-query/resilience"
)

// DefaultAccessorTimeout bounds a single data-accessor call when no other
// timeout is configured. Exceeding it is a transient failure for the retry
// and breaker layers.
const DefaultAccessorTimeout = 2 * time.Second

// ProductService answers product queries.
type ProductService struct {
	repo    ProductRepository
	keys    cache.KeySerializer
	bus     *eventbus.Bus
	logger  zerolog.Logger
	timeout time.Duration

	byID      *resilience.Pipeline[catalog.Product]
	all       *resilience.Pipeline[pagination.Page[catalog.Product]]
	byCat     *resilience.Pipeline[pagination.Page[catalog.Product]]
	recommend *resilience.Pipeline[pagination.Page[catalog.Product]]
}

// NewProductService wires the product read pipelines. bus may be nil when
// view events are not wanted; registry may be nil when breaker states need
// not be observable.
func NewProductService(
	repo ProductRepository,
	store *cache.Store,
	keys cache.KeySerializer,
	bus *eventbus.Bus,
	cfg resilience.Config,
	timeout time.Duration,
	logger zerolog.Logger,
	registry *resilience.Registry,
) *ProductService {
	if timeout <= 0 {
		timeout = DefaultAccessorTimeout
	}

	s := &ProductService{
		repo:    repo,
		keys:    keys,
		bus:     bus,
		logger:  logger,
		timeout: timeout,
	}
	s.byID = resilience.New[catalog.Product]("product.get_by_id", cache.ClassEntity, store, cfg, logger)
	s.all = resilience.New[pagination.Page[catalog.Product]]("product.get_all", cache.ClassListing, store, cfg, logger)
	s.byCat = resilience.New[pagination.Page[catalog.Product]]("product.get_by_category", cache.ClassCategoryListing, store, cfg, logger)
	s.recommend = resilience.New[pagination.Page[catalog.Product]]("product.get_recommended", cache.ClassRecommendation, store, cfg, logger)

	registry.Register(s.byID)
	registry.Register(s.all)
	registry.Register(s.byCat)
	registry.Register(s.recommend)
	return s
}

// GetByID returns the product stored under id. A fresh (non-cached) fetch
// publishes one view event after the value is obtained and before it is
// returned; publication never blocks or fails the read.
func (s *ProductService) GetByID(ctx context.Context, id string) (catalog.Product, error) {
	key := s.keys.SerializeKey("product.get_by_id", id)
	return s.byID.Execute(ctx, key, func(ctx context.Context) (catalog.Product, error) {
		p, err := s.findByID(ctx, id)
		if err != nil {
			return catalog.Product{}, err
		}
		s.publishView(ctx, p)
		return p, nil
	}, resilience.EntityFallback[catalog.Product]())
}

// GetAll returns one page of products, optionally filtered by a name
// substring and a category, both case-insensitive. Blank filters mean "no
// filter". The snapshot is sorted by id before slicing so page boundaries
// are reproducible.
func (s *ProductService) GetAll(ctx context.Context, page, size int, name, category string) (pagination.Page[catalog.Product], error) {
	key := s.keys.SerializeKey("product.get_all", page, size, strings.TrimSpace(name), strings.TrimSpace(category))
	return s.all.Execute(ctx, key, func(ctx context.Context) (pagination.Page[catalog.Product], error) {
		products, err := s.findAll(ctx)
		if err != nil {
			return pagination.Page[catalog.Product]{}, err
		}
		sortProducts(products)
		return pagination.Slice(products, pagination.ProductFilters(name, category), page, size), nil
	}, resilience.PageFallback[catalog.Product](page, size))
}

// GetByCategory returns one page of the products in category.
func (s *ProductService) GetByCategory(ctx context.Context, category string, page, size int) (pagination.Page[catalog.Product], error) {
	key := s.keys.SerializeKey("product.get_by_category", strings.TrimSpace(category), page, size)
	return s.byCat.Execute(ctx, key, func(ctx context.Context) (pagination.Page[catalog.Product], error) {
		products, err := s.findByCategory(ctx, category)
		if err != nil {
			return pagination.Page[catalog.Product]{}, err
		}
		sortProducts(products)
		return pagination.Slice(products, nil, page, size), nil
	}, resilience.PageFallback[catalog.Product](page, size))
}

// GetRecommended returns one page of products sharing baseID's category,
// excluding baseID itself. A missing base product surfaces as not-found
// through every resilience layer.
func (s *ProductService) GetRecommended(ctx context.Context, baseID string, page, size int) (pagination.Page[catalog.Product], error) {
	key := s.keys.SerializeKey("product.get_recommended", baseID, page, size)
	return s.recommend.Execute(ctx, key, func(ctx context.Context) (pagination.Page[catalog.Product], error) {
		base, err := s.findByID(ctx, baseID)
		if err != nil {
			return pagination.Page[catalog.Product]{}, err
		}
		related, err := s.findByCategory(ctx, base.Category)
		if err != nil {
			return pagination.Page[catalog.Product]{}, err
		}
		recommended := related[:0]
		for _, p := range related {
			if p.ID != baseID {
				recommended = append(recommended, p)
			}
		}
		sortProducts(recommended)
		return pagination.Slice(recommended, nil, page, size), nil
	}, resilience.PageFallback[catalog.Product](page, size))
}

func (s *ProductService) findByID(ctx context.Context, id string) (catalog.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) findAll(ctx context.Context) ([]catalog.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindAll(ctx)
}

func (s *ProductService) findByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByCategory(ctx, category)
}

func (s *ProductService) publishView(ctx context.Context, p catalog.Product) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.ProductViewed{
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		RequestID:   reqid.From(ctx),
		ViewedAt:    time.Now(),
	})
	s.logger.Debug().Str("product_id", p.ID).Msg("product view event published")
}

func sortProducts(products []catalog.Product) {
	pagination.SortByID(products, func(p catalog.Product) string { return p.ID })
}
