// Package httpapi exposes the catalog query services over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(h *Handlers, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", h.listProducts)
			products.GET("/:id", h.getProduct)
			products.GET("/:id/recommended", h.listRecommended)
			products.GET("/category/:category", h.listProductsByCategory)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.listCategories)
			categories.GET("/:id", h.getCategory)
			categories.GET("/slug/:slug", h.getCategoryBySlug)
		}

		v1.GET("/images/product/:productId", h.listProductImages)

		metrics := v1.Group("/metrics")
		{
			metrics.GET("/products/:productId/views", h.productViewMetrics)
			metrics.GET("/categories/:category/views", h.categoryViewMetrics)
			metrics.GET("/breakers", h.breakerStates)
		}
	}

	return r
}
