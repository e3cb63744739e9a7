package product

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

// RoleHeader carries the caller's role on management requests.
const RoleHeader = "X-User-Role"

// RequireAdmin rejects callers whose role does not grant management access.
func RequireAdmin(clk clock.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !domain.HasAccess(c.GetHeader(RoleHeader)) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				failures.NewBody(domain.ErrAccessDenied, http.StatusForbidden, clk.Now()))
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}
