package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-catalog-query/catalog"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func respondOKWithMessage(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// respondError maps domain errors onto status codes: missing resources
// are 404, degraded reads are 503, anything else is 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case catalog.IsNotFound(err):
		status = http.StatusNotFound
	case catalog.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, Envelope{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}
