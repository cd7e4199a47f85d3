package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/catalog"
	"github.com/goliatone/go-catalog-query/pagination"
	"github.com/goliatone/go-catalog-query/resilience"
)

// ProductImageService pages through a product's image gallery ordered
// by display position.
type ProductImageService struct {
	repo    ImageRepository
	keys    cache.KeySerializer
	logger  zerolog.Logger
	timeout time.Duration

	byProduct *resilience.Pipeline[pagination.Page[catalog.ProductImage]]
}

// NewProductImageService wires the image read pipeline.
func NewProductImageService(
	repo ImageRepository,
	store *cache.Store,
	keys cache.KeySerializer,
	cfg resilience.Config,
	timeout time.Duration,
	logger zerolog.Logger,
	registry *resilience.Registry,
) *ProductImageService {
	if timeout <= 0 {
		timeout = DefaultAccessorTimeout
	}

	s := &ProductImageService{
		repo:    repo,
		keys:    keys,
		logger:  logger,
		timeout: timeout,
	}
	s.byProduct = resilience.New[pagination.Page[catalog.ProductImage]]("image.get_by_product", cache.ClassImages, store, cfg, logger)
	registry.Register(s.byProduct)
	return s
}

// GetByProduct returns one page of the product's images sorted by
// display order, images without an order last. A product with no
// images yields an empty page, not an error.
func (s *ProductImageService) GetByProduct(ctx context.Context, productID string, page, size int) (pagination.Page[catalog.ProductImage], error) {
	key := s.keys.SerializeKey("image.get_by_product", productID, page, size)
	return s.byProduct.Execute(ctx, key, func(ctx context.Context) (pagination.Page[catalog.ProductImage], error) {
		images, err := s.findByProduct(ctx, productID)
		if err != nil {
			return pagination.Page[catalog.ProductImage]{}, err
		}
		pagination.SortImagesByDisplayOrder(images)
		return pagination.Slice(images, nil, page, size), nil
	}, resilience.PageFallback[catalog.ProductImage](page, size))
}

func (s *ProductImageService) findByProduct(ctx context.Context, productID string) ([]catalog.ProductImage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByProductID(ctx, productID)
}
