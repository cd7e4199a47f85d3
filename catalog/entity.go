// Package catalog defines the entity types and error taxonomy shared by the
// query layer. Entities are immutable at rest: the stores replace them whole
// by id, never mutate them in place.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Category is a free-text label compared
// case-insensitively across the service. Price is an arbitrary-precision
// decimal, never a float.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Category groups products under a URL-friendly slug.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"productCount"`
}

// ProductImage is one image attached to a product. A nil DisplayOrder sorts
// after every image that has one.
type ProductImage struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	URL          string `json:"url"`
	AltText      string `json:"altText"`
	Primary      bool   `json:"isPrimary"`
	DisplayOrder *int   `json:"displayOrder,omitempty"`
}
