// Package testsupport provides catalog fixtures shared across test
// packages.
package testsupport

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-catalog-query/catalog"
)

// Product builds a product fixture with deterministic fields derived
// from n.
func Product(n int, category string) catalog.Product {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return catalog.Product{
		ID:          fmt.Sprintf("prod-%03d", n),
		Name:        fmt.Sprintf("Product %d", n),
		Description: fmt.Sprintf("Description for product %d", n),
		Price:       decimal.NewFromInt(int64(n * 10)),
		Quantity:    n,
		Category:    category,
		Active:      true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Products builds count product fixtures in the given category.
func Products(count int, category string) []catalog.Product {
	out := make([]catalog.Product, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, Product(i, category))
	}
	return out
}

// Category builds a category fixture.
func Category(n int, slug string) catalog.Category {
	return catalog.Category{
		ID:          fmt.Sprintf("%d", n),
		Name:        fmt.Sprintf("Category %d", n),
		Description: fmt.Sprintf("Description for category %d", n),
		Slug:        slug,
	}
}

// Image builds an image fixture for the given product. displayOrder may
// be nil for images without an explicit position.
func Image(n int, productID string, displayOrder *int) catalog.ProductImage {
	return catalog.ProductImage{
		ID:           fmt.Sprintf("img-%03d", n),
		ProductID:    productID,
		URL:          fmt.Sprintf("https://images.example.com/%s/%d.jpg", productID, n),
		AltText:      fmt.Sprintf("Image %d", n),
		Primary:      n == 1,
		DisplayOrder: displayOrder,
	}
}

// Order returns a pointer to n, for image display order fixtures.
func Order(n int) *int { return &n }
