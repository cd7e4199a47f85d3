// Package service implements the catalog query operations: paginated,
// filtered listings and single-entity lookups, each wrapped in the
// cache/retry/breaker/fallback pipeline, with view events fanned out after
// successful product fetches.
package service

import (
	"context"

	"github.com/goliatone/go-catalog-query/catalog"
)

// ProductRepository is the data accessor the product service reads from.
// Implementations promise a snapshot no older than the start of the call
// and no iteration order; the service imposes its own order before slicing.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (catalog.Product, error)
	FindAll(ctx context.Context) ([]catalog.Product, error)
	FindByCategory(ctx context.Context, category string) ([]catalog.Product, error)
}

// CategoryRepository is the data accessor the category service reads from.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (catalog.Category, error)
	FindBySlug(ctx context.Context, slug string) (catalog.Category, error)
	FindAll(ctx context.Context) ([]catalog.Category, error)
}

// ImageRepository is the data accessor the image service reads from.
type ImageRepository interface {
	FindByProductID(ctx context.Context, productID string) ([]catalog.ProductImage, error)
}
