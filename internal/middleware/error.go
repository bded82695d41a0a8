// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodshare_backend/internal/common"
)

// ErrorHandler recovers from panics and converts accumulated Gin errors into
// the common API error envelope.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic recovered in request handler",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(RequestIDKey)),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, common.ErrInternalServer)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		apiErr, ok := common.IsAPIError(err)
		if !ok {
			logger.Error("Unhandled error in request",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			apiErr = common.ErrInternalServer
		}
		c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
	}
}
