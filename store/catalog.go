package store

import (
	"context"
	"strings"

	"github.com/goliatone/go-catalog-query/catalog"
)

// ProductStore exposes product accessors over a Collection. Absence is
// reported as catalog.NotFoundError; no ordering is promised.
type ProductStore struct {
	col *Collection[catalog.Product]
}

// NewProductStore creates an empty product store.
func NewProductStore() *ProductStore {
	return &ProductStore{col: NewCollection[catalog.Product]()}
}

// Collection exposes the underlying collection for seeding and fault
// injection.
func (s *ProductStore) Collection() *Collection[catalog.Product] { return s.col }

// Save stores p under its id, replacing any previous version.
func (s *ProductStore) Save(ctx context.Context, p catalog.Product) error {
	return s.col.Put(ctx, p.ID, p)
}

// FindByID returns the product stored under id.
func (s *ProductStore) FindByID(ctx context.Context, id string) (catalog.Product, error) {
	p, ok, err := s.col.Get(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	if !ok {
		return catalog.Product{}, catalog.NewNotFound("Product", "id", id)
	}
	return p, nil
}

// FindAll returns a snapshot of every product.
func (s *ProductStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return s.col.All(ctx)
}

// FindByCategory returns every product in category, compared
// case-insensitively.
func (s *ProductStore) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	return s.col.FindBy(ctx, func(p catalog.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// Delete removes the product stored under id.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	return s.col.Delete(ctx, id)
}

// Exists reports whether a product is stored under id.
func (s *ProductStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.col.Exists(ctx, id)
}

// CategoryStore exposes category accessors over a Collection.
type CategoryStore struct {
	col *Collection[catalog.Category]
}

// NewCategoryStore creates an empty category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{col: NewCollection[catalog.Category]()}
}

// Collection exposes the underlying collection for seeding and fault
// injection.
func (s *CategoryStore) Collection() *Collection[catalog.Category] { return s.col }

// Save stores c under its id, replacing any previous version.
func (s *CategoryStore) Save(ctx context.Context, c catalog.Category) error {
	return s.col.Put(ctx, c.ID, c)
}

// FindByID returns the category stored under id.
func (s *CategoryStore) FindByID(ctx context.Context, id string) (catalog.Category, error) {
	c, ok, err := s.col.Get(ctx, id)
	if err != nil {
		return catalog.Category{}, err
	}
	if !ok {
		return catalog.Category{}, catalog.NewNotFound("Category", "id", id)
	}
	return c, nil
}

// FindBySlug returns the category with the given slug.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	matches, err := s.col.FindBy(ctx, func(c catalog.Category) bool {
		return c.Slug == slug
	})
	if err != nil {
		return catalog.Category{}, err
	}
	if len(matches) == 0 {
		return catalog.Category{}, catalog.NewNotFound("Category", "slug", slug)
	}
	return matches[0], nil
}

// FindAll returns a snapshot of every category.
func (s *CategoryStore) FindAll(ctx context.Context) ([]catalog.Category, error) {
	return s.col.All(ctx)
}

// ImageStore exposes product image accessors over a Collection.
type ImageStore struct {
	col *Collection[catalog.ProductImage]
}

// NewImageStore creates an empty image store.
func NewImageStore() *ImageStore {
	return &ImageStore{col: NewCollection[catalog.ProductImage]()}
}

// Collection exposes the underlying collection for seeding and fault
// injection.
func (s *ImageStore) Collection() *Collection[catalog.ProductImage] { return s.col }

// Save stores img under its id, replacing any previous version.
func (s *ImageStore) Save(ctx context.Context, img catalog.ProductImage) error {
	return s.col.Put(ctx, img.ID, img)
}

// FindByProductID returns every image attached to productID. A product with
// no images yields an empty result, not an error.
func (s *ImageStore) FindByProductID(ctx context.Context, productID string) ([]catalog.ProductImage, error) {
	return s.col.FindBy(ctx, func(img catalog.ProductImage) bool {
		return img.ProductID == productID
	})
}
