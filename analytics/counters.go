// Package analytics hosts the event subscribers that aggregate view
// metrics. All state is process-local: it starts empty at boot and is never
// persisted. Each counter is a shared concurrent map mutated only through
// atomic per-key increments, so an interrupted handler either applies its
// whole update or none of it.
package analytics

import (
	"context"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-catalog-query/eventbus"
)

// ProductViewCounter counts views per product id.
type ProductViewCounter struct {
	views *xsync.MapOf[string, int64]
}

// NewProductViewCounter creates an empty counter.
func NewProductViewCounter() *ProductViewCounter {
	return &ProductViewCounter{views: xsync.NewMapOf[string, int64]()}
}

// Name implements eventbus.Subscriber.
func (c *ProductViewCounter) Name() string { return "product-view-counter" }

// Handle increments the count for the viewed product. A cancelled context
// skips the increment entirely.
func (c *ProductViewCounter) Handle(ctx context.Context, ev eventbus.ProductViewed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.views.Compute(ev.ProductID, func(cur int64, _ bool) (int64, bool) {
		return cur + 1, false
	})
	return nil
}

// Count returns the view count recorded for productID.
func (c *ProductViewCounter) Count(productID string) int64 {
	v, _ := c.views.Load(productID)
	return v
}

// Snapshot copies the current counts.
func (c *ProductViewCounter) Snapshot() map[string]int64 {
	out := make(map[string]int64, c.views.Size())
	c.views.Range(func(k string, v int64) bool {
		out[k] = v
		return true
	})
	return out
}

// CategoryViewCounter counts views per category. Category labels are
// compared case-insensitively across the service, so keys are lowercased.
type CategoryViewCounter struct {
	views *xsync.MapOf[string, int64]
}

// NewCategoryViewCounter creates an empty counter.
func NewCategoryViewCounter() *CategoryViewCounter {
	return &CategoryViewCounter{views: xsync.NewMapOf[string, int64]()}
}

// Name implements eventbus.Subscriber.
func (c *CategoryViewCounter) Name() string { return "category-view-counter" }

// Handle increments the count for the viewed product's category.
func (c *CategoryViewCounter) Handle(ctx context.Context, ev eventbus.ProductViewed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := strings.ToLower(ev.Category)
	c.views.Compute(key, func(cur int64, _ bool) (int64, bool) {
		return cur + 1, false
	})
	return nil
}

// Count returns the view count recorded for category.
func (c *CategoryViewCounter) Count(category string) int64 {
	v, _ := c.views.Load(strings.ToLower(category))
	return v
}

// Snapshot copies the current counts.
func (c *CategoryViewCounter) Snapshot() map[string]int64 {
	out := make(map[string]int64, c.views.Size())
	c.views.Range(func(k string, v int64) bool {
		out[k] = v
		return true
	})
	return out
}
