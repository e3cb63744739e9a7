package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// NewRouter registers the public catalog routes and the admin-only
// management routes under /api/v1.
func NewRouter(h *Handler, serviceName string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware(serviceName), RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/v1")

	catalog := api.Group("/products")
	catalog.GET("", h.ListProducts)
	catalog.GET("/:id", h.GetProduct)

	management := api.Group("/management/products", RequireAdmin(h.clock))
	management.GET("", h.ListProducts)
	management.POST("", h.CreateProduct)
	management.GET("/:id", h.GetProduct)
	management.PUT("/:id", h.UpdateProduct)
	management.DELETE("/:id", h.DeleteProduct)

	return r
}
