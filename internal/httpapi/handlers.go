package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-catalog-query/analytics"
	"github.com/goliatone/go-catalog-query/resilience"
	"github.com/goliatone/go-catalog-query/service"
)

const (
	defaultPageSize    = 20
	defaultMaxPageSize = 50
)

// Handlers exposes the catalog read API.
type Handlers struct {
	products      *service.ProductService
	categories    *service.CategoryService
	images        *service.ProductImageService
	productViews  *analytics.ProductViewCounter
	categoryViews *analytics.CategoryViewCounter
	breakers      *resilience.Registry
	maxPageSize   int
}

// NewHandlers builds the handler set. maxPageSize caps the size query
// parameter; values <= 0 fall back to the default cap.
func NewHandlers(
	products *service.ProductService,
	categories *service.CategoryService,
	images *service.ProductImageService,
	productViews *analytics.ProductViewCounter,
	categoryViews *analytics.CategoryViewCounter,
	breakers *resilience.Registry,
	maxPageSize int,
) *Handlers {
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	return &Handlers{
		products:      products,
		categories:    categories,
		images:        images,
		productViews:  productViews,
		categoryViews: categoryViews,
		breakers:      breakers,
		maxPageSize:   maxPageSize,
	}
}

// pageParams parses page and size query parameters. Malformed or
// negative values fall back to defaults and size is capped.
func (h *Handlers) pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > h.maxPageSize {
		size = h.maxPageSize
	}
	return page, size
}

func (h *Handlers) listProducts(c *gin.Context) {
	page, size := h.pageParams(c)
	result, err := h.products.GetAll(c.Request.Context(), page, size, c.Query("name"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) getProduct(c *gin.Context) {
	result, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) listProductsByCategory(c *gin.Context) {
	page, size := h.pageParams(c)
	result, err := h.products.GetByCategory(c.Request.Context(), c.Param("category"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) listRecommended(c *gin.Context) {
	page, size := h.pageParams(c)
	result, err := h.products.GetRecommended(c.Request.Context(), c.Param("id"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) listCategories(c *gin.Context) {
	page, size := h.pageParams(c)
	result, err := h.categories.GetAll(c.Request.Context(), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) getCategory(c *gin.Context) {
	result, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) getCategoryBySlug(c *gin.Context) {
	result, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) listProductImages(c *gin.Context) {
	page, size := h.pageParams(c)
	result, err := h.images.GetByProduct(c.Request.Context(), c.Param("productId"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handlers) productViewMetrics(c *gin.Context) {
	productID := c.Param("productId")
	respondOKWithMessage(c, gin.H{
		"productId": productID,
		"viewCount": h.productViews.Count(productID),
	}, "Product view metrics retrieved successfully")
}

func (h *Handlers) categoryViewMetrics(c *gin.Context) {
	category := c.Param("category")
	respondOKWithMessage(c, gin.H{
		"category":  category,
		"viewCount": h.categoryViews.Count(category),
	}, "Category view metrics retrieved successfully")
}

func (h *Handlers) breakerStates(c *gin.Context) {
	respondOK(c, h.breakers.States())
}
